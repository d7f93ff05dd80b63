// Package seeds loads the initial website content from embedded YAML files.
package seeds

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"cms-backend/models"
	"cms-backend/services"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed data/*.yaml
var dataFS embed.FS

type Options struct {
	// Clear empties the dataset's tables before inserting.
	Clear bool
}

// TableReport describes what happened to one table.
type TableReport struct {
	Table    string `json:"table"`
	Cleared  int64  `json:"cleared"`
	Inserted int    `json:"inserted"`
	Skipped  bool   `json:"skipped"`
}

type Report struct {
	Dataset string        `json:"dataset"`
	Tables  []TableReport `json:"tables"`
}

type row = map[string]any

type dataset struct {
	file string
	// tables are cleared in this order, children before parents.
	tables []any
	seed   func(tx *gorm.DB, raw []byte, rep *Report) error
}

var datasets = map[string]dataset{
	"hero-slides": {
		file:   "hero_slides.yaml",
		tables: []any{&models.HeroSlide{}},
		seed:   seedList[models.HeroSlide],
	},
	"business-lines": {
		file: "business_lines.yaml",
		tables: []any{
			&models.BusinessAdvantage{},
			&models.BusinessImage{},
			&models.BusinessFeature{},
			&models.BusinessStat{},
			&models.BusinessLine{},
		},
		seed: seedBusinessLines,
	},
	"partners": {
		file:   "partners.yaml",
		tables: []any{&models.Partner{}},
		seed:   seedList[models.Partner],
	},
	"news": {
		file:   "news.yaml",
		tables: []any{&models.News{}},
		seed:   seedList[models.News],
	},
	"management": {
		file:   "management.yaml",
		tables: []any{&models.Management{}, &models.BoardOfDirector{}, &models.BoardOfCommissioner{}},
		seed:   seedManagement,
	},
	"gcg": {
		file:   "gcg.yaml",
		tables: []any{&models.GCGCommittee{}, &models.GCGPolicy{}},
		seed:   seedGCG,
	},
	"branches": {
		file:   "branches.yaml",
		tables: []any{&models.Branch{}},
		seed:   seedList[models.Branch],
	},
}

// Names lists every dataset in a stable order.
func Names() []string {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Seeder struct {
	db   *gorm.DB
	log  *zap.Logger
	opts Options
}

func New(db *gorm.DB, log *zap.Logger, opts Options) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, log: log, opts: opts}
}

// Run seeds the named datasets, or all of them when names is empty. Each
// dataset runs in its own transaction; the first failure stops the run.
func (s *Seeder) Run(ctx context.Context, names ...string) ([]Report, error) {
	if len(names) == 0 {
		names = Names()
	}
	for _, name := range names {
		if _, ok := datasets[name]; !ok {
			return nil, fmt.Errorf("unknown dataset %q", name)
		}
	}

	reports := make([]Report, 0, len(names))
	for _, name := range names {
		rep, err := s.runOne(ctx, name, datasets[name])
		if err != nil {
			return reports, fmt.Errorf("seed %s: %w", name, err)
		}
		for _, t := range rep.Tables {
			s.log.Info("seeded",
				zap.String("dataset", name),
				zap.String("table", t.Table),
				zap.Int64("cleared", t.Cleared),
				zap.Int("inserted", t.Inserted),
				zap.Bool("skipped", t.Skipped),
			)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (s *Seeder) runOne(ctx context.Context, name string, ds dataset) (Report, error) {
	raw, err := dataFS.ReadFile("data/" + ds.file)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Dataset: name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.opts.Clear {
			for _, model := range ds.tables {
				n, err := services.ClearTable(tx, model)
				if err != nil {
					return err
				}
				rep.Tables = append(rep.Tables, TableReport{Table: tableName(tx, model), Cleared: n})
			}
		}
		return ds.seed(tx, raw, &rep)
	})
	return rep, err
}

func tableName(tx *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}

func (r *Report) record(table string, inserted int, skipped bool) {
	for i := range r.Tables {
		if r.Tables[i].Table == table {
			r.Tables[i].Inserted = inserted
			r.Tables[i].Skipped = skipped
			return
		}
	}
	r.Tables = append(r.Tables, TableReport{Table: table, Inserted: inserted, Skipped: skipped})
}

// decodeRows turns YAML rows into models through their JSON tags. Rows
// without sort_order get their position in the file.
func decodeRows[T any](rows []row) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for i, r := range rows {
		if _, ok := r["sort_order"]; !ok {
			r["sort_order"] = i + 1
		}
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		item := new(T)
		if d, ok := any(item).(interface{ ApplyDefaults() }); ok {
			d.ApplyDefaults()
		}
		if err := json.Unmarshal(b, item); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// insertRows writes rows unless the table already holds data.
func insertRows[T any](tx *gorm.DB, rows []row, rep *Report) ([]*T, error) {
	table := tableName(tx, new(T))

	var count int64
	if err := tx.Model(new(T)).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		rep.record(table, 0, true)
		return nil, nil
	}

	items, err := decodeRows[T](rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return nil, fmt.Errorf("insert %s: %w", table, err)
		}
	}
	rep.record(table, len(items), false)
	return items, nil
}

func seedList[T any](tx *gorm.DB, raw []byte, rep *Report) error {
	var rows []row
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return err
	}
	_, err := insertRows[T](tx, rows, rep)
	return err
}

func seedBusinessLines(tx *gorm.DB, raw []byte, rep *Report) error {
	var rows []row
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return err
	}

	children := map[string][]row{}
	for _, r := range rows {
		slug, _ := r["slug"].(string)
		for _, key := range []string{"advantages", "images", "features", "stats"} {
			list, _ := r[key].([]any)
			for _, item := range list {
				if m, ok := item.(row); ok {
					m["_line"] = slug
					children[key] = append(children[key], m)
				}
			}
			delete(r, key)
		}
	}

	lines, err := insertRows[models.BusinessLine](tx, rows, rep)
	if err != nil {
		return err
	}
	if lines == nil {
		// Existing lines keep their own children.
		for _, model := range []any{&models.BusinessAdvantage{}, &models.BusinessImage{}, &models.BusinessFeature{}, &models.BusinessStat{}} {
			rep.record(tableName(tx, model), 0, true)
		}
		return nil
	}

	ids := make(map[string]string, len(lines))
	for _, l := range lines {
		ids[l.Slug] = l.ID
	}
	for key, list := range children {
		for _, c := range list {
			slug, _ := c["_line"].(string)
			id, ok := ids[slug]
			if !ok {
				return fmt.Errorf("%s: unknown business line %q", key, slug)
			}
			c["business_line_id"] = id
			delete(c, "_line")
		}
	}

	if _, err := insertRows[models.BusinessAdvantage](tx, children["advantages"], rep); err != nil {
		return err
	}
	if _, err := insertRows[models.BusinessImage](tx, children["images"], rep); err != nil {
		return err
	}
	if _, err := insertRows[models.BusinessFeature](tx, children["features"], rep); err != nil {
		return err
	}
	_, err = insertRows[models.BusinessStat](tx, children["stats"], rep)
	return err
}

func seedManagement(tx *gorm.DB, raw []byte, rep *Report) error {
	var doc struct {
		Management           []row `yaml:"management"`
		BoardOfDirectors     []row `yaml:"board_of_directors"`
		BoardOfCommissioners []row `yaml:"board_of_commissioners"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if _, err := insertRows[models.Management](tx, doc.Management, rep); err != nil {
		return err
	}
	if _, err := insertRows[models.BoardOfDirector](tx, doc.BoardOfDirectors, rep); err != nil {
		return err
	}
	_, err := insertRows[models.BoardOfCommissioner](tx, doc.BoardOfCommissioners, rep)
	return err
}

func seedGCG(tx *gorm.DB, raw []byte, rep *Report) error {
	var doc struct {
		Committees []row `yaml:"committees"`
		Policies   []row `yaml:"policies"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if _, err := insertRows[models.GCGCommittee](tx, doc.Committees, rep); err != nil {
		return err
	}
	_, err := insertRows[models.GCGPolicy](tx, doc.Policies, rep)
	return err
}
