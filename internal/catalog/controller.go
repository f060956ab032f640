package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductInput is what a new product is built from.
type ProductInput struct {
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// ProductPatch replaces only the fields that are non-nil.
type ProductPatch struct {
	Name        *string `json:"name,omitempty"`
	Price       *string `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Controller owns the live document. Every accepted mutation is written
// through the Store before it becomes visible; a failed write leaves the
// in-memory document exactly as it was.
type Controller struct {
	mu    sync.Mutex
	doc   Document
	store *Store
	log   *zap.Logger

	now   func() time.Time
	newID func() string
	check *validator.Validate
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

func WithIDGenerator(f func() string) Option { return func(c *Controller) { c.newID = f } }

func WithControllerLogger(l *zap.Logger) Option { return func(c *Controller) { c.log = l } }

func NewController(ctx context.Context, store *Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: func() string { return "p_" + uuid.NewString() },
		check: validator.New(),
	}
	for _, o := range opts {
		o(c)
	}
	c.doc = store.Load(ctx)
	return c
}

func (c *Controller) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)
	if err := c.validate(in); err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := Product{
		ID:          c.uniqueID(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   c.now().UnixMilli(),
	}

	next := Document{
		Users:    append([]User(nil), c.doc.Users...),
		Products: make([]Product, 0, len(c.doc.Products)+1),
	}
	next.Products = append(next.Products, p)
	next.Products = append(next.Products, c.doc.Products...)

	if err := c.commit(ctx, next); err != nil {
		return Product{}, err
	}
	c.log.Info("product created", zap.String("id", p.ID))
	return p, nil
}

func (c *Controller) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.doc.indexOf(id)
	if i < 0 {
		return Product{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}

	p := c.doc.Products[i]
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = strings.TrimSpace(*patch.Price)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}

	if err := c.validate(ProductInput{Name: p.Name, Price: p.Price}); err != nil {
		return Product{}, err
	}

	next := c.doc.Clone()
	next.Products[i] = p

	if err := c.commit(ctx, next); err != nil {
		return Product{}, err
	}
	c.log.Info("product updated", zap.String("id", id))
	return p, nil
}

func (c *Controller) SetProductImage(ctx context.Context, id, dataURI string) (Product, error) {
	return c.UpdateProduct(ctx, id, ProductPatch{Image: &dataURI})
}

// DeleteProduct reports ErrNotFound for an unknown id rather than treating it
// as a no-op.
func (c *Controller) DeleteProduct(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.doc.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}

	next := Document{
		Users:    append([]User(nil), c.doc.Users...),
		Products: make([]Product, 0, len(c.doc.Products)-1),
	}
	next.Products = append(next.Products, c.doc.Products[:i]...)
	next.Products = append(next.Products, c.doc.Products[i+1:]...)

	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.log.Info("product deleted", zap.String("id", id))
	return nil
}

func (c *Controller) Product(id string) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.doc.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	return c.doc.Products[i], true
}

// ResetAll restores the seed document: default users, no products.
func (c *Controller) ResetAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.commit(ctx, Seed()); err != nil {
		return err
	}
	c.log.Warn("catalog reset to seed")
	return nil
}

// Authenticate checks credentials against a freshly loaded document so that
// user changes written by another process are honoured. Comparison is exact
// and case-sensitive.
func (c *Controller) Authenticate(ctx context.Context, username, password string) (User, error) {
	doc := c.store.Load(ctx)
	for _, u := range doc.Users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return User{}, ErrAuthFailed
}

// commit persists next and only then installs it. Callers hold c.mu.
func (c *Controller) commit(ctx context.Context, next Document) error {
	if err := c.store.Save(ctx, next); err != nil {
		return err
	}
	c.doc = next
	return nil
}

func (c *Controller) uniqueID() string {
	for {
		id := c.newID()
		if c.doc.indexOf(id) < 0 {
			return id
		}
	}
}

func (c *Controller) validate(in ProductInput) error {
	err := c.check.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return &ValidationError{Fields: fields}
}
