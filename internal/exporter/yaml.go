package exporter

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/finwatch/internal/model"
)

// Backup is the YAML document written by ExportWatchlistsYAML.
type Backup struct {
	ExportedAt time.Time         `yaml:"exported_at"`
	Active     string            `yaml:"active"`
	Watchlists []BackupWatchlist `yaml:"watchlists"`
}

// BackupWatchlist is one watchlist in a Backup.
type BackupWatchlist struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Color     string       `yaml:"color"`
	CreatedAt time.Time    `yaml:"created_at"`
	Items     []BackupItem `yaml:"items"`
}

// BackupItem is one watchlist item in a Backup.
type BackupItem struct {
	Symbol        string `yaml:"symbol"`
	Name          string `yaml:"name"`
	Price         string `yaml:"price"`
	Change        string `yaml:"change"`
	ChangePercent string `yaml:"change_percent"`
	IsPositive    bool   `yaml:"is_positive"`
}

// ExportWatchlistsYAML renders the watchlists as a human-readable backup.
func ExportWatchlistsYAML(watchlists []model.Watchlist, activeID string, exportedAt time.Time) ([]byte, error) {
	doc := Backup{
		ExportedAt: exportedAt.UTC(),
		Active:     activeID,
		Watchlists: make([]BackupWatchlist, 0, len(watchlists)),
	}

	for _, w := range watchlists {
		bw := BackupWatchlist{
			ID:        w.ID.String(),
			Name:      w.Name,
			Color:     w.Color,
			CreatedAt: w.CreatedAt.UTC(),
			Items:     make([]BackupItem, 0, len(w.Items)),
		}
		for _, it := range w.Items {
			bw.Items = append(bw.Items, BackupItem{
				Symbol:        it.Symbol,
				Name:          it.Name,
				Price:         it.Price,
				Change:        it.Change,
				ChangePercent: it.ChangePercent,
				IsPositive:    it.IsPositive,
			})
		}
		doc.Watchlists = append(doc.Watchlists, bw)
	}

	return yaml.Marshal(doc)
}
