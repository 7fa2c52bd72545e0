package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtifactName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		want     Artifact
		wantOK   bool
	}{
		{
			name: "plain v1 artifact",
			path: "/data/the_godfather_en.json",
			want: Artifact{
				Path:     "/data/the_godfather_en.json",
				FilmSlug: "the_godfather",
				Language: "en",
				Version:  "v1",
			},
			wantOK: true,
		},
		{
			name: "explicit v2 marker",
			path: "the_godfather_en_v2.json",
			want: Artifact{
				Path:     "the_godfather_en_v2.json",
				FilmSlug: "the_godfather",
				Language: "en",
				Version:  "v2",
			},
			wantOK: true,
		},
		{
			name: "explicit v1 marker",
			path: "seven_samurai_ja_v1.json",
			want: Artifact{
				Path:     "seven_samurai_ja_v1.json",
				FilmSlug: "seven_samurai",
				Language: "ja",
				Version:  "v1",
			},
			wantOK: true,
		},
		{
			name: "three letter language code",
			path: "metropolis_deu.json",
			want: Artifact{
				Path:     "metropolis_deu.json",
				FilmSlug: "metropolis",
				Language: "deu",
				Version:  "v1",
			},
			wantOK: true,
		},
		{
			name:   "no language suffix",
			path:   "metropolis.json",
			wantOK: false,
		},
		{
			name:   "suffix too long for a language code",
			path:   "some_film_titles.json",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseArtifactName(tt.path)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSelectPreferred(t *testing.T) {
	paths := []string{
		"/data/the_godfather_en.json",
		"/data/the_godfather_en_v2.json",
		"/data/the_godfather_fr.json",
		"/data/seven_samurai_ja_v2.json",
		"/data/not-a-transcript.json",
	}

	selected := SelectPreferred(paths, nil)

	require.Len(t, selected, 3)

	// v2 replaces v1 for the same (film, language)
	en := selected[Key{FilmSlug: "the_godfather", Language: "en"}]
	assert.Equal(t, "v2", en.Version)
	assert.Equal(t, "/data/the_godfather_en_v2.json", en.Path)

	// a lone v1 is kept
	fr := selected[Key{FilmSlug: "the_godfather", Language: "fr"}]
	assert.Equal(t, "v1", fr.Version)

	// a lone v2 is kept
	ja := selected[Key{FilmSlug: "seven_samurai", Language: "ja"}]
	assert.Equal(t, "v2", ja.Version)
}

func TestSelectPreferred_OrderIndependent(t *testing.T) {
	// v2 must win regardless of discovery order
	forward := SelectPreferred([]string{"a_film_en.json", "a_film_en_v2.json"}, nil)
	backward := SelectPreferred([]string{"a_film_en_v2.json", "a_film_en.json"}, nil)

	key := Key{FilmSlug: "a_film", Language: "en"}
	assert.Equal(t, "v2", forward[key].Version)
	assert.Equal(t, "v2", backward[key].Version)
}
