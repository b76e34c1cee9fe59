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

// The ISD (image support data) document, and its assembly from a resolved driver. Documents
// hold only normalised property values, nothing says which capabilities produced them
package isd

// Document - one ISD. Sections are always present, optional values inside them are omitted
// when the driver couldn't supply them
type Document struct {
	NameModel          string `json:"name_model"`
	SensorModelVersion int    `json:"sensor_model_version"`

	Instrument        Instrument                        `json:"instrument"`
	Platform          Platform                          `json:"platform"`
	Image             Image                             `json:"image"`
	DetectorCenter    DetectorPoint                     `json:"detector_center"`
	DetectorStart     DetectorPoint                     `json:"detector_start"`
	FocalLength       FocalLength                       `json:"focal_length"`
	Focal2Pixel       Focal2Pixel                       `json:"focal2pixel"`
	Summing           Summing                           `json:"summing"`
	Exposure          Exposure                          `json:"exposure"`
	ClockCounts       ClockCounts                       `json:"clock_counts"`
	Target            Target                            `json:"target"`
	EphemerisTime     EphemerisTime                     `json:"ephemeris_time"`
	OpticalDistortion map[string]map[string]interface{} `json:"optical_distortion"`

	// Sensor geometry specific
	LineScanRate             [][]float64 `json:"line_scan_rate,omitempty"`
	SpacecraftDirection      *int        `json:"spacecraft_direction,omitempty"`
	PushFrame                *PushFrame  `json:"push_frame,omitempty"`
	LineTimes                interface{} `json:"line_times,omitempty"`
	SampleJitterCoefficients interface{} `json:"sample_jitter_coefficients,omitempty"`
	LineJitterCoefficients   interface{} `json:"line_jitter_coefficients,omitempty"`
}

type Instrument struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	SensorName    string  `json:"sensor_name"`
	Ikid          int     `json:"ikid"`
	SensorFrameID int     `json:"sensor_frame_id"`
	FilterNumber  *int    `json:"filter_number,omitempty"`
}

type Platform struct {
	Name           string  `json:"name"`
	SpacecraftName string  `json:"spacecraft_name"`
	SpacecraftID   int     `json:"spacecraft_id"`
	HostID         *string `json:"instrument_host_id,omitempty"`
	HostName       *string `json:"instrument_host_name,omitempty"`
}

type Image struct {
	Lines   int `json:"lines"`
	Samples int `json:"samples"`
}

type DetectorPoint struct {
	Line   float64 `json:"line"`
	Sample float64 `json:"sample"`
}

type FocalLength struct {
	FocalLength float64 `json:"focal_length"`
}

type Focal2Pixel struct {
	Lines   []float64 `json:"lines"`
	Samples []float64 `json:"samples"`
}

type Summing struct {
	SamplingFactor int `json:"sampling_factor"`
	Line           int `json:"line"`
	Sample         int `json:"sample"`
	Downtrack      int `json:"downtrack"`
	Crosstrack     int `json:"crosstrack"`
}

type Exposure struct {
	Duration        float64  `json:"exposure_duration"`
	LineDuration    *float64 `json:"line_exposure_duration,omitempty"`
	InterframeDelay *float64 `json:"interframe_delay,omitempty"`
}

type ClockCounts struct {
	Start string  `json:"start"`
	Stop  *string `json:"stop,omitempty"`
}

type Target struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

type EphemerisTime struct {
	Start    float64   `json:"start"`
	Stop     float64   `json:"stop"`
	Center   float64   `json:"center"`
	Times    []float64 `json:"times"`
	UtcStart *string   `json:"utc_start,omitempty"`
	UtcStop  *string   `json:"utc_stop,omitempty"`
}

type PushFrame struct {
	FrameletHeight        int  `json:"framelet_height"`
	NumFrames             int  `json:"num_frames"`
	FrameletOrderReversed bool `json:"framelet_order_reversed"`
	FrameletsFlipped      bool `json:"framelets_flipped"`
	NumLinesOverlap       int  `json:"num_lines_overlap"`
}
