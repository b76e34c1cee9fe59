// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package label

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// PDS4Namespaces - prefixes usable in PDS4 paths. Bound once, every PDS4 label is queried with them
var PDS4Namespaces = map[string]string{
	"pds":         "http://pds.nasa.gov/pds4/pds/v1",
	"img":         "http://pds.nasa.gov/pds4/img/v1",
	"psa":         "http://psa.esa.int/psa/v1",
	"juice_janus": "http://psa.esa.int/psa/juice/janus/v1",
}

// PDS4Label - an XML label queried by XPath, for example:
//
//	.//pds:Observing_System_Component[pds:type='Instrument']/pds:name
type PDS4Label struct {
	doc   *xmlquery.Node
	ns    map[string]string
	exprs map[string]*xpath.Expr
}

func (l *PDS4Label) Format() Format {
	return FormatPDS4
}

func (l *PDS4Label) Find(path string) (Value, error) {
	expr, err := l.compile(path)
	if err != nil {
		return Value{}, err
	}

	node := xmlquery.QuerySelector(l.doc, expr)
	if node == nil {
		return Value{}, notFound(path)
	}

	result := Value{Text: strings.TrimSpace(node.InnerText())}
	if node.Type == xmlquery.AttributeNode {
		return result, nil
	}

	result.Unit = node.SelectAttr("unit")
	return result, nil
}

func (l *PDS4Label) compile(path string) (*xpath.Expr, error) {
	if expr, ok := l.exprs[path]; ok {
		return expr, nil
	}

	expr, err := xpath.CompileWithNS(path, l.ns)
	if err != nil {
		return nil, fmt.Errorf("bad path \"%v\": %v", path, err)
	}

	l.exprs[path] = expr
	return expr, nil
}

// OpenPDS4 parses PDS4 XML. Anything without an XML root element is rejected
func OpenPDS4(name string, raw []byte) (*PDS4Label, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, &InvalidLabelError{Format: FormatPDS4, Input: name, Err: err}
	}

	if !hasElement(doc) {
		return nil, &InvalidLabelError{Format: FormatPDS4, Input: name, Err: errors.New("no XML root element")}
	}

	return &PDS4Label{doc: doc, ns: PDS4Namespaces, exprs: map[string]*xpath.Expr{}}, nil
}

func hasElement(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode || hasElement(c) {
			return true
		}
	}
	return false
}
