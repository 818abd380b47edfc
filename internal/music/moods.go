package music

// moodQueries maps a detected emotion to the search queries tried against the
// Spotify catalog, in order of preference. Mixing Spanish and English terms
// gives usable results in every market.
var moodQueries = map[string][]string{
	"HAPPY":     {"happy hits", "música alegre", "good vibes", "feel good"},
	"SAD":       {"sad songs", "canciones tristes", "heartbreak"},
	"CALM":      {"chill relax", "música relajante", "calm vibes"},
	"ANGRY":     {"rock duro", "rage workout", "heavy metal"},
	"SURPRISED": {"party hits", "fiesta", "dance party"},
	"CONFUSED":  {"lo-fi beats", "instrumental focus", "estudio"},
	"FEAR":      {"calming music", "música tranquila", "peaceful piano"},
	"DISGUSTED": {"mood booster", "buen rollo", "positive energy"},
	"UNKNOWN":   {"top hits", "éxitos del momento"},
}

// fallbackPlaylists holds the editorial playlist served when the search comes
// back empty. Entries can be overridden per mood via SPOTIFY_FALLBACK_<MOOD>.
var fallbackPlaylists = map[string]string{
	"HAPPY":     "37i9dQZF1DXdPec7aLTmlC",
	"SAD":       "37i9dQZF1DX7qK8ma5wgG1",
	"CALM":      "37i9dQZF1DWU0ScTcjJBdj",
	"ANGRY":     "37i9dQZF1DWWJOmJ7nRx0C",
	"SURPRISED": "37i9dQZF1DXaXB8fQg7xif",
	"CONFUSED":  "37i9dQZF1DWWQRwui0ExPn",
	"FEAR":      "37i9dQZF1DWSqBruwoIXkA",
	"DISGUSTED": "37i9dQZF1DX3rxVfibe1L0",
	"UNKNOWN":   "37i9dQZF1DXcBWIGoYBM5M",
}

func normalizeMood(mood string) string {
	if _, ok := moodQueries[mood]; ok {
		return mood
	}
	return "UNKNOWN"
}
