package shared

import "time"

// ProcessRef identifies one entry of a process snapshot. Threads is filled
// when the enumeration backend reports it for free (Toolhelp32 does).
type ProcessRef struct {
	Pid     int
	Name    string
	Threads int
}

// Features are the raw signals read for a single process during a scan.
type Features struct {
	Name      string        `json:"name"`
	Visible   bool          `json:"visible"` // owns at least one visible top-level window
	Threads   int           `json:"threads"`
	Uptime    time.Duration `json:"uptime"` // now - creation time
	CPU       float64       `json:"cpu"`    // fraction of one core over the sample window
	StartedAt time.Time     `json:"started_at"`
}
