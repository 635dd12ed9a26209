// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measproc

// Columns of a raw measurement log.
const (
	ColCore0Elf   = "core0AppElf"
	ColCore1Elf   = "core1AppElf"
	ColCore0Id    = "core0AppId"
	ColCore1Id    = "core1AppId"
	ColEventID    = "evt_id"
	ColEventType  = "evt_type"
	ColEventName  = "evt_name"
	ColPartition  = "part_id"
	ColMarker     = "is_begin_not_end"
	ColValue      = "measurement_value"
	ColActivation = "activation"
	ColPointName  = "obs_point_name"
	ColPointID    = "obs_point_id"
	ColLimiter    = "limiter_cores_checked"
)

// Columns derived by the pipeline.
const (
	// ColCore0Ident and ColCore1Ident hold the application
	// identities of the primary and secondary core.
	ColCore0Ident = "core0AppElfId"
	ColCore1Ident = "core1AppElfId"

	ColMean       = "mean_value"
	ColMeanRef    = "mean_value_ref"
	ColElongation = "mean_elongation"
)

// Sentinel is the measurement value the harness records for an
// invalid measurement.
const Sentinel = -1

// NanoToMilli converts nanoseconds to milliseconds.
const NanoToMilli = 1e-6

// BaseRequired lists the columns every log must carry regardless of
// the variant being reduced.
var BaseRequired = []string{
	ColCore0Elf, ColCore1Elf, ColCore0Id, ColCore1Id,
	ColEventID, ColPartition, ColMarker, ColValue,
	ColActivation, ColPointName, ColLimiter,
}
