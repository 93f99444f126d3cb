package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackCities(t *testing.T) {
	t.Run("should match countries case-insensitively and trimmed", func(t *testing.T) {
		for _, name := range []string{"spain", "Spain", "SPAIN", " spain "} {
			preds, ok := FallbackCities(name)
			assert.True(t, ok, "expected dataset for %q", name)
			assert.NotEmpty(t, preds)
		}
	})

	t.Run("should cover exactly the stock countries", func(t *testing.T) {
		for _, name := range []string{"spain", "usa", "uk"} {
			_, ok := FallbackCities(name)
			assert.True(t, ok, "expected dataset for %q", name)
		}

		_, ok := FallbackCities("atlantis")
		assert.False(t, ok)
	})

	t.Run("should hand out independent copies", func(t *testing.T) {
		first, ok := FallbackCities("uk")
		require.True(t, ok)

		first["London"] = 99

		second, ok := FallbackCities("uk")
		require.True(t, ok)
		assert.InDelta(t, 0.0044, second["London"], 1e-9)
	})

	t.Run("should keep dataset values on the small-fraction scale", func(t *testing.T) {
		th := DefaultThresholds()
		for _, country := range []string{"spain", "usa", "uk"} {
			preds, ok := FallbackCities(country)
			require.True(t, ok)
			for city, p := range preds {
				assert.Greater(t, p, 0.0, "%s/%s", country, city)
				assert.Less(t, p, 0.01, "%s/%s", country, city)
			}
			// Each dataset exercises more than one tier.
			tiers := make(map[Tier]bool)
			for _, p := range preds {
				tiers[th.Tier(p)] = true
			}
			assert.Greater(t, len(tiers), 1, "%s should span tiers", country)
		}
	})
}

func TestAverageInput(t *testing.T) {
	t.Run("should carry the requested region", func(t *testing.T) {
		assert.Equal(t, "kenya", averageInput("kenya").Region)
	})

	t.Run("should score as quiet mid-range conditions", func(t *testing.T) {
		// 150/1000*0.3 + 2/100*0.3 = 0.051; no environmental penalties apply.
		assert.InDelta(t, 0.051, BaseProbability(averageInput("any")), 1e-9)
	})
}
