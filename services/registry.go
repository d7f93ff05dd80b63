package services

import (
	"errors"
	"fmt"
	"sort"

	"cms-backend/models"

	"gorm.io/gorm"
)

// Registry maps URL names to the content tables the console edits.
type Registry struct {
	resources map[string]Resource
}

func register[T any](r *Registry, db *gorm.DB, s Schema) error {
	if _, dup := r.resources[s.Name]; dup {
		return fmt.Errorf("resource %q registered twice", s.Name)
	}
	e, err := NewEditor[T](db, s)
	if err != nil {
		return err
	}
	r.resources[s.Name] = e
	return nil
}

// NewRegistry registers every content table.
func NewRegistry(db *gorm.DB) (*Registry, error) {
	r := &Registry{resources: make(map[string]Resource)}
	title := []string{"title_id", "title_en"}

	err := errors.Join(
		register[models.HeroSlide](r, db, Schema{Name: "hero-slides", Ordered: true, Public: true, Searchable: title}),
		register[models.BusinessLine](r, db, Schema{Name: "business-lines", Ordered: true, Public: true, Searchable: []string{"slug", "title_id", "title_en"}}),
		register[models.BusinessAdvantage](r, db, Schema{Name: "business-advantages", Ordered: true, Public: true, Searchable: title}),
		register[models.BusinessImage](r, db, Schema{Name: "business-images", Ordered: true, Public: true}),
		register[models.BusinessFeature](r, db, Schema{Name: "business-features", Ordered: true, Public: true, Searchable: []string{"text_id", "text_en"}}),
		register[models.BusinessStat](r, db, Schema{Name: "business-stats", Ordered: true, Public: true}),
		register[models.Partner](r, db, Schema{Name: "partners", Ordered: true, Public: true, Searchable: []string{"name", "category"}}),
		register[models.News](r, db, Schema{Name: "news", Ordered: true, Public: true, Searchable: []string{"slug", "title_id", "title_en"}, Order: "published_at DESC, sort_order ASC"}),
		register[models.Branch](r, db, Schema{Name: "branches", Ordered: true, Public: true, Searchable: []string{"name", "city", "province"}}),
		register[models.Management](r, db, Schema{Name: "management", Ordered: true, Public: true, Searchable: []string{"name"}}),
		register[models.BoardOfDirector](r, db, Schema{Name: "board-of-directors", Ordered: true, Public: true, Searchable: []string{"name"}}),
		register[models.BoardOfCommissioner](r, db, Schema{Name: "board-of-commissioners", Ordered: true, Public: true, Searchable: []string{"name"}}),
		register[models.GCGCommittee](r, db, Schema{Name: "gcg-committees", Ordered: true, Public: true, Searchable: []string{"name_id", "name_en"}}),
		register[models.GCGPolicy](r, db, Schema{Name: "gcg-policies", Ordered: true, Public: true, Searchable: title}),
		register[models.CorporateValue](r, db, Schema{Name: "corporate-values", Ordered: true, Public: true, Searchable: title}),
		register[models.CompanyTimeline](r, db, Schema{Name: "company-timeline", Ordered: true, Public: true, Searchable: []string{"year", "title_id", "title_en"}, Order: "year ASC, sort_order ASC"}),
		register[models.NavMenu](r, db, Schema{Name: "nav-menus", Ordered: true, Public: true, Searchable: []string{"label_id", "label_en", "path"}}),
		register[models.SEOSetting](r, db, Schema{Name: "seo-settings", Ordered: true, Public: true, Searchable: []string{"page_path", "title_id", "title_en"}}),
		register[models.SocialChannel](r, db, Schema{Name: "social-channels", Ordered: true, Public: true, Searchable: []string{"platform", "handle"}}),
		register[models.InvestorCalendar](r, db, Schema{Name: "investor-calendar", Ordered: true, Public: true, Searchable: title, Order: "event_date ASC"}),
		register[models.Career](r, db, Schema{Name: "careers", Ordered: true, Public: true, Searchable: []string{"title_id", "title_en", "department", "location"}}),
		register[models.JobApplication](r, db, Schema{Name: "job-applications", Searchable: []string{"full_name", "email", "status"}}),
		register[models.ContactMessage](r, db, Schema{Name: "contact-messages", Searchable: []string{"name", "email", "subject"}}),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) Lookup(name string) (Resource, error) {
	res, ok := r.resources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return res, nil
}

// LookupPublic only returns resources the public site may read.
func (r *Registry) LookupPublic(name string) (Resource, error) {
	res, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !res.Describe().Public {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return res, nil
}

// Descriptors lists every resource sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.resources))
	for _, res := range r.resources {
		out = append(out, res.Describe())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
