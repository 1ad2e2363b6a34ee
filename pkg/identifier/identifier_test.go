package identifier

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAt(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	pattern := regexp.MustCompile(`^DDD_2024_\d{3}$`)
	for i := 0; i < 100; i++ {
		id := NewAt(PrefixIntervention, at)
		assert.Regexp(t, pattern, id)
	}
}

func TestNewPrefixes(t *testing.T) {
	year := fmt.Sprintf("%d", time.Now().Year())

	assert.Regexp(t, `^DDD_`+year+`_\d{3}$`, New(PrefixIntervention))
	assert.Regexp(t, `^DEC_`+year+`_\d{3}$`, New(PrefixDecision))
	assert.Regexp(t, `^ACT_`+year+`_\d{3}$`, New(PrefixAction))
	assert.Regexp(t, `^OUT_`+year+`_\d{3}$`, New(PrefixOutcome))
}
