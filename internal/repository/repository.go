package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tooldir/internal/domain"
	"tooldir/internal/events"
	"tooldir/internal/metrics"
	"tooldir/internal/storage"
)

// DefaultResetPassword is the password ResetPassword assigns when none is configured
const DefaultResetPassword = "maker123"

// Repositories is the set of repositories sharing one store and one lock.
// Build it once at startup with New and pass it to whatever needs it.
type Repositories struct {
	ToolCategories     *CategoryRepository
	ArticleCategories  *CategoryRepository
	ResourceCategories *CategoryRepository

	Tools     *ToolRepository
	Articles  *ArticleRepository
	Resources *ResourceRepository
	Messages  *MessageRepository
	Makers    *MakerRepository
	AuthCodes *AuthCodeRepository
	Projects  *ProjectRepository
	Teams     *TeamRepository
	Styles    *StyleRepository

	base *base
}

type options struct {
	now           func() time.Time
	newID         func(prefix string) string
	logger        *zap.Logger
	metrics       *metrics.Metrics
	bus           *events.Bus
	pinned        []string
	bcryptCost    int
	resetPassword string
}

// Option configures New
type Option func(*options)

// WithClock sets the time source for timestamps and generated codes
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the default "<prefix>_<uuid>" id scheme
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(o *options) { o.newID = fn }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records collection operations on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithBus publishes change events on bus
func WithBus(bus *events.Bus) Option {
	return func(o *options) { o.bus = bus }
}

// WithPinnedArticles sets the article ids restored from seed data when
// missing. No ids disables the repair.
func WithPinnedArticles(ids ...string) Option {
	return func(o *options) { o.pinned = ids }
}

// WithBcryptCost sets the cost used to hash maker passwords
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// WithResetPassword sets the password assigned by MakerRepository.ResetPassword
func WithResetPassword(pw string) Option {
	return func(o *options) { o.resetPassword = pw }
}

// NewID returns "<prefix>_<uuid>"
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// New builds every repository on top of store
func New(store storage.Store, opts ...Option) *Repositories {
	o := options{
		now:           time.Now,
		newID:         NewID,
		pinned:        []string{domain.ArticleUpdateLogID, domain.ArticleAnnouncementID},
		bcryptCost:    bcrypt.DefaultCost,
		resetPassword: DefaultResetPassword,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.bus == nil {
		o.bus = events.NewBus()
	}

	b := &base{
		store:   store,
		mu:      &sync.Mutex{},
		bus:     o.bus,
		log:     o.logger.Named("repository"),
		metrics: o.metrics,
		now:     o.now,
		newID:   o.newID,
	}
	pw := passwords{cost: o.bcryptCost, reset: o.resetPassword}
	seedHash := sync.OnceValue(func() string {
		h, err := pw.hash(domain.SeedMakerPassword)
		if err != nil {
			b.log.Error("failed to hash seed maker password", zap.Error(err))
		}
		return h
	})
	pw.dummy = seedHash

	toolCats := newCollection(b, KeyToolCategories, domain.SeedToolCategories)
	articleCats := newCollection(b, KeyArticleCategories, domain.SeedArticleCategories)
	resourceCats := newCollection(b, KeyResourceCategories, domain.SeedResourceCategories)

	tools := newCollection(b, KeyTools, domain.SeedTools)
	articles := newCollection(b, KeyArticles, domain.SeedArticles)
	articles.pinned = o.pinned
	resources := newCollection(b, KeyResources, domain.SeedResources)
	messages := newCollection(b, KeyMessages, domain.SeedMessages)
	makers := newCollection(b, KeyMakers, func() []domain.Maker { return domain.SeedMakers(seedHash()) })
	codes := newCollection(b, KeyAuthCodes, domain.SeedAuthCodes)
	projects := newCollection(b, KeyProjects, domain.SeedProjects)
	teams := newCollection(b, KeyTeams, domain.SeedTeams)
	styles := newCollection(b, KeyStyles, domain.SeedStyles)

	return &Repositories{
		ToolCategories: newCategoryRepository(toolCats, prefixToolCategory, tools,
			func(t *domain.Tool) *string { return &t.Category }),
		ArticleCategories: newCategoryRepository(articleCats, prefixArticleCategory, articles,
			func(a *domain.Article) *string { return &a.CategoryID }),
		ResourceCategories: newCategoryRepository(resourceCats, prefixResourceCategory, resources,
			func(r *domain.ResourceItem) *string { return &r.CategoryID }),

		Tools:     &ToolRepository{Collection: tools, categories: toolCats},
		Articles:  &ArticleRepository{Collection: articles},
		Resources: &ResourceRepository{Collection: resources},
		Messages:  &MessageRepository{Collection: messages},
		Makers:    &MakerRepository{Collection: makers, codes: codes, passwords: pw},
		AuthCodes: &AuthCodeRepository{Collection: codes, makers: makers},
		Projects:  &ProjectRepository{Collection: projects, makers: makers},
		Teams:     &TeamRepository{Collection: teams, makers: makers, projects: projects},
		Styles:    &StyleRepository{Collection: styles},

		base: b,
	}
}

// Bus returns the bus change events are published on
func (r *Repositories) Bus() *events.Bus { return r.base.bus }

type passwords struct {
	cost  int
	reset string
	// dummy is compared against when no maker matches a username
	dummy func() string
}

func (p passwords) hash(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), p.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (p passwords) matches(hash, pw string) bool {
	return hash != "" && bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
