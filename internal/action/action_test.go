package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiresViewer(t *testing.T) {
	viewer := map[Action]bool{
		Modify:                true,
		TakeAnotherScreenshot: true,
		Save:                  true,
		Copy:                  true,
		Undo:                  true,
	}
	for _, a := range All() {
		assert.Equal(t, viewer[a], a.RequiresViewer(), a.String())
	}
}

func TestAllIsComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 14)
	assert.Equal(t, SetEntireScreen, all[0])
	assert.Equal(t, Undo, all[len(all)-1])
	assert.False(t, None.Valid())
	for _, a := range all {
		assert.True(t, a.Valid())
		assert.NotEmpty(t, a.Label())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"Save", Save},
		{"save", Save},
		{"take_another_screenshot", TakeAnotherScreenshot},
		{"Take another screenshot", TakeAnotherScreenshot},
		{"SetEntireScreen", SetEntireScreen},
		{"entire-screen", SetEntireScreen},
		{" undo ", Undo},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := Parse("")
	assert.Error(t, err)
	_, err = Parse("explode")
	assert.Error(t, err)
}
