package options

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/edward-ap/scopeview/internal/config"
)

func TestDiffClassifiesEachField(t *testing.T) {
	t.Parallel()

	base := config.DefaultOptions()
	tests := []struct {
		name   string
		mutate func(*config.AppOptions)
		want   Changes
	}{
		{name: "identical", mutate: func(*config.AppOptions) {}, want: 0},
		{name: "quick scroll", mutate: func(o *config.AppOptions) { o.QuickScroll = !o.QuickScroll }, want: General},
		{name: "trigger mid", mutate: func(o *config.AppOptions) { o.TrigPosDisplayInMid = !o.TrigPosDisplayInMid }, want: General},
		{name: "profile bar", mutate: func(o *config.AppOptions) { o.DisplayProfileInBar = !o.DisplayProfileInBar }, want: General},
		{name: "swap back buffer", mutate: func(o *config.AppOptions) { o.SwapBackBufferAlways = !o.SwapBackBufferAlways }, want: General},
		{name: "auto scroll", mutate: func(o *config.AppOptions) { o.AutoScrollLatestData = !o.AutoScrollLatestData }, want: General},
		{name: "font size", mutate: func(o *config.AppOptions) { o.FontSize = 11 }, want: Font},
		{name: "tooltip font size", mutate: func(o *config.AppOptions) { o.TooltipFontSize = 7 }, want: Font},
		{name: "font family", mutate: func(o *config.AppOptions) { o.FontName = "Noto Sans" }, want: Font},
		{name: "both categories", mutate: func(o *config.AppOptions) {
			o.QuickScroll = !o.QuickScroll
			o.FontSize = 12
		}, want: General | Font},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			edited := base
			tt.mutate(&edited)
			assert.Equal(t, tt.want, Diff(base, edited))
		})
	}
}

func TestMergeCopiesOnlyChangedCategories(t *testing.T) {
	t.Parallel()

	dst := config.DefaultOptions()
	src := dst
	src.QuickScroll = false
	src.FontSize = 12

	got := merge(dst, src, General)
	assert.False(t, got.QuickScroll)
	assert.Equal(t, float64(config.DefaultFontSize), got.FontSize)

	got = merge(dst, src, Font)
	assert.True(t, got.QuickScroll)
	assert.Equal(t, 12.0, got.FontSize)
}

func TestChangesString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", Changes(0).String())
	assert.Equal(t, "general", General.String())
	assert.Equal(t, "font", Font.String())
	assert.Equal(t, "general,font", (General | Font).String())
	assert.False(t, Changes(0).Has(0))
	assert.True(t, (General | Font).Has(Font))
}

func TestValidateFontSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    float64
		wantErr bool
	}{
		{name: "min", size: config.MinFontSize},
		{name: "max", size: config.MaxFontSize},
		{name: "default", size: config.DefaultFontSize},
		{name: "below min", size: config.MinFontSize - 1, wantErr: true},
		{name: "above max", size: config.MaxFontSize + 1, wantErr: true},
		{name: "fractional", size: 9.5, wantErr: true},
		{name: "nan", size: math.NaN(), wantErr: true},
		{name: "infinity", size: math.Inf(1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateFontSize(tt.size)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrFontSizeOutOfRange)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseFontSize(t *testing.T) {
	t.Parallel()

	v, err := ParseFontSize(" 10 ")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	for _, bad := range []string{"", "abc", "6", "13", "8.5"} {
		_, err := ParseFontSize(bad)
		assert.ErrorIs(t, err, ErrFontSizeOutOfRange, "input %q", bad)
	}
}

func TestFontSizeChoicesCoverRange(t *testing.T) {
	t.Parallel()

	min, max := config.FontSizeRange()
	choices := FontSizeChoices(min, max)
	require.Equal(t, []float64{7, 8, 9, 10, 11, 12}, choices)
	for _, c := range choices {
		require.NoError(t, ValidateFontSize(c))
	}

	assert.Equal(t, []float64{8, 9}, FontSizeChoices(7.5, 9.2))
	assert.Nil(t, FontSizeChoices(10, 9))
}

func TestFontSizeIndex(t *testing.T) {
	t.Parallel()

	choices := FontSizeChoices(config.FontSizeRange())
	tests := []struct {
		name string
		size float64
		want int
	}{
		{name: "min selects first", size: config.MinFontSize, want: 0},
		{name: "max selects last", size: config.MaxFontSize, want: len(choices) - 1},
		{name: "exact middle", size: 10, want: 3},
		{name: "unknown falls back to default", size: 42, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FontSizeIndex(choices, tt.size)
			assert.Equal(t, tt.want, got)
			if tt.size >= config.MinFontSize && tt.size <= config.MaxFontSize {
				assert.Equal(t, tt.size, choices[got])
			}
		})
	}

	assert.Equal(t, 0, FontSizeIndex([]float64{20, 21}, 5))
}

func TestFormatFontSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "9", FormatFontSize(9))
	assert.Equal(t, "12", FormatFontSize(12))
}

func TestFontFamilyChoices(t *testing.T) {
	t.Parallel()

	got := FontFamilyChoices([]string{"Noto Sans", "DejaVu Sans", "Fixed [Misc]", " Noto Sans ", ""})
	assert.Equal(t, []string{"", "DejaVu Sans", "Noto Sans"}, got)

	assert.Equal(t, 2, FontFamilyIndex(got, "Noto Sans"))
	assert.Equal(t, 0, FontFamilyIndex(got, "Missing Family"))
	assert.Equal(t, []string{""}, FontFamilyChoices(nil))
}
