package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookdesk/internal/state"
)

func names(items []item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func source() []item { return items }

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeExplicit, m)

	m, err = ParseMode("Debounced")
	require.NoError(t, err)
	assert.Equal(t, ModeDebounced, m)

	_, err = ParseMode("eager")
	assert.Error(t, err)
}

func TestController_ExplicitWaitsForTrigger(t *testing.T) {
	c := NewController(source, matchItem, Options{Mode: ModeExplicit, MinIndicator: time.Hour})
	defer c.Close()

	c.SetQuery("dune")
	c.SetField("name")
	assert.Equal(t, []string{"Dune", "Emma", "Dracula"}, names(c.Results()))
	assert.False(t, c.Searching())

	c.Trigger()
	assert.Equal(t, []string{"Dune"}, names(c.Results()))
	assert.True(t, c.Searching())

	q, f := c.Applied()
	assert.Equal(t, "dune", q)
	assert.Equal(t, Field("name"), f)
}

func TestController_IndicatorStaysOnForMinimum(t *testing.T) {
	c := NewController(source, matchItem, Options{MinIndicator: 50 * time.Millisecond})
	defer c.Close()

	ch, cancel := c.Subscribe()
	defer cancel()

	start := time.Now()
	c.SetQuery("emma")
	c.Trigger()
	require.True(t, c.Searching())

	require.Eventually(t, func() bool { return !c.Searching() }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	select {
	case change := <-ch:
		assert.Equal(t, state.ChangeSettled, change.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestController_Debounced(t *testing.T) {
	c := NewController(source, matchItem, Options{
		Mode:         ModeDebounced,
		Debounce:     30 * time.Millisecond,
		MinIndicator: time.Millisecond,
	})
	defer c.Close()

	c.SetQuery("d")
	c.SetQuery("dr")
	c.SetQuery("dra")
	assert.Equal(t, []string{"Dune", "Emma", "Dracula"}, names(c.Results()))

	require.Eventually(t, func() bool {
		q, _ := c.Applied()
		return q == "dra"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"Dracula"}, names(c.Results()))
}

func TestController_TriggerFlushesDebounce(t *testing.T) {
	c := NewController(source, matchItem, Options{Mode: ModeDebounced, Debounce: time.Hour})
	defer c.Close()

	c.SetQuery("emma")
	c.Trigger()
	assert.Equal(t, []string{"Emma"}, names(c.Results()))
}

func TestController_ResultsFollowSource(t *testing.T) {
	current := []item{{Name: "Dune"}}
	c := NewController(func() []item { return current }, matchItem, Options{MinIndicator: time.Millisecond})
	defer c.Close()

	c.SetQuery("d")
	c.Trigger()
	assert.Equal(t, []string{"Dune"}, names(c.Results()))

	current = append(current, item{Name: "Dracula"}, item{Name: "Emma"})
	assert.Equal(t, []string{"Dune", "Dracula"}, names(c.Results()))
}

func TestController_CloseIgnoresLaterCalls(t *testing.T) {
	c := NewController(source, matchItem, Options{Mode: ModeDebounced, Debounce: 10 * time.Millisecond})
	c.SetQuery("emma")
	c.Close()
	c.Trigger()

	time.Sleep(30 * time.Millisecond)
	q, _ := c.Applied()
	assert.Equal(t, "", q)
	assert.False(t, c.Searching())
}
