package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywatch/internal/shared"
)

func TestParseTasklist(t *testing.T) {
	out := `"System Idle Process","0","Services","0","8 K"
"System","4","Services","0","144 K"
"python.exe","5120","Console","1","24,312 K"
"INFO: No tasks are running which match the specified criteria."
"broken","x","Console","1","1 K"
`
	refs, err := parseTasklist(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, []shared.ProcessRef{
		{Pid: 0, Name: "System Idle Process"},
		{Pid: 4, Name: "System"},
		{Pid: 5120, Name: "python.exe"},
	}, refs)
}

func TestParseTasklistEmpty(t *testing.T) {
	refs, err := parseTasklist(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, refs)
}
