package langhint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_Empty(t *testing.T) {
	assert.Equal(t, Hint{}, Detect(""))
	assert.Equal(t, Hint{}, Detect("1234 !!! ..."))
}

func TestDetect_ShortTextHasScriptOnly(t *testing.T) {
	h := Detect("fake news")
	assert.Equal(t, "Latin", h.Script)
	assert.Empty(t, h.Lang)
	assert.False(t, h.Foreign())
}

func TestDetect_English(t *testing.T) {
	h := Detect("The government announced today that the new policy will take effect next month across the whole country.")
	assert.Equal(t, "Latin", h.Script)
	assert.Equal(t, "en", h.Lang)
	assert.Greater(t, h.Confidence, 0.0)
}

func TestDetect_Cyrillic(t *testing.T) {
	// "the government announced a new policy today" in Russian
	h := Detect("Правительство сегодня объявило о новой политике")
	assert.Equal(t, "Cyrillic", h.Script)
	assert.NotEqual(t, "en", h.Lang)
}
