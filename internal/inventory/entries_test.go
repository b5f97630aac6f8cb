package inventory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cleanarr/internal/inventory"
)

func TestAssetsAddRoutesByKind(t *testing.T) {
	var assets inventory.Assets
	assets.Add(inventory.AssetEntry{Title: "Heat (1995)", Kind: inventory.KindMovie, Files: []string{"Heat (1995).jpg"}})
	assets.Add(inventory.AssetEntry{Title: "Lost (2004)", Kind: inventory.KindSeries, Files: []string{"Lost (2004).jpg"}})
	assets.Add(inventory.AssetEntry{Title: "Marvel", Kind: inventory.KindCollection, Files: []string{"Marvel.jpg"}})
	assets.Add(inventory.AssetEntry{Title: "Alien (1979)", Kind: inventory.KindMovie, Files: []string{"Alien (1979).jpg"}})

	if assets.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", assets.Len())
	}
	if len(assets.ByKind(inventory.KindMovie)) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(assets.Movies))
	}

	var titles []string
	for _, entry := range assets.All() {
		titles = append(titles, entry.Title)
	}
	want := []string{"Heat (1995)", "Alien (1979)", "Lost (2004)", "Marvel"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("All() order mismatch (-want +got):\n%s", diff)
	}
}

func TestMediaTitles(t *testing.T) {
	media := inventory.Media{
		Movies: []inventory.MovieEntry{{Title: "Heat (1995)"}},
		Series: []inventory.SeriesEntry{{Title: "Lost (2004)", Seasons: []string{"Season 1"}}},
	}
	if diff := cmp.Diff([]string{"Heat (1995)"}, media.Titles(inventory.KindMovie)); diff != "" {
		t.Fatalf("movie titles (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Lost (2004)"}, media.Titles(inventory.KindSeries)); diff != "" {
		t.Fatalf("series titles (-want +got):\n%s", diff)
	}
	if got := media.Titles(inventory.KindCollection); got != nil {
		t.Fatalf("expected no collection titles, got %v", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[inventory.Kind]string{
		inventory.KindMovie:      "movie",
		inventory.KindSeries:     "series",
		inventory.KindCollection: "collection",
		inventory.Kind(9):        "kind(9)",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
