package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, 1, cfg.SlidesToShow)
	assert.Equal(t, 1, cfg.SlidesToScroll)

	cfg = Config{SlidesToShow: 3}.withDefaults()
	assert.Equal(t, 3, cfg.SlidesToScroll, "scroll defaults to show")

	cfg = Config{SlidesToShow: 3, SlidesToScroll: 1}.withDefaults()
	assert.Equal(t, 1, cfg.SlidesToScroll)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero value", Config{}, ""},
		{"full", Config{SlidesToShow: 3, SlidesToScroll: 2, SlidesToAppend: 1, AutoplayTimeout: time.Second, Pagination: PaginationSpaced}, ""},
		{"negative show", Config{SlidesToShow: -1}, "slidesToShow"},
		{"negative scroll", Config{SlidesToScroll: -2}, "slidesToScroll"},
		{"negative append", Config{SlidesToAppend: -1}, "slidesToAppend"},
		{"negative autoplay", Config{AutoplayTimeout: -time.Second}, "autoplayTimeout"},
		{"unknown pagination", Config{Pagination: 3}, "pagination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
