package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cutmevents/internal/models"
	"cutmevents/internal/repositories"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	// Anchored on the real clock so issued tokens still verify.
	return &fakeClock{t: time.Now().UTC().Truncate(time.Second)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sentEmail struct {
	to, subject, html string
}

type fakeEmailService struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailService) SendEmail(_ context.Context, to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, html: html})
	return nil
}

type fakeItemRepo struct {
	items map[primitive.ObjectID]models.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[primitive.ObjectID]models.Item{}}
}

func (f *fakeItemRepo) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	f.items[item.ID] = *item
	return item, nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &item, nil
}

func (f *fakeItemRepo) Find(_ context.Context, filter models.ItemFilter) ([]models.Item, error) {
	out := []models.Item{}
	for _, item := range f.items {
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		if filter.Published != nil && item.IsPublished != *filter.Published {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeItemRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "type":
			item.Type = v.(models.ItemType)
		case "title":
			item.Title = v.(string)
		case "description":
			item.Description = v.(string)
		case "date":
			item.Date = v.(time.Time)
		case "location":
			item.Location = v.(string)
		case "imageUrl":
			item.ImageURL = v.(string)
		case "isPublished":
			item.IsPublished = v.(bool)
		case "updatedAt":
			item.UpdatedAt = v.(time.Time)
		}
	}
	f.items[id] = item
	return &item, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRegistrationRepo struct {
	items         *fakeItemRepo
	registrations []models.Registration
}

func (f *fakeRegistrationRepo) Create(_ context.Context, r *models.Registration) (*models.Registration, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.registrations = append(f.registrations, *r)
	return r, nil
}

func (f *fakeRegistrationRepo) FindWithItems(_ context.Context, itemID *primitive.ObjectID) ([]models.RegistrationWithItem, error) {
	out := []models.RegistrationWithItem{}
	for i := len(f.registrations) - 1; i >= 0; i-- {
		r := f.registrations[i]
		if itemID != nil && r.ItemID != *itemID {
			continue
		}
		joined := models.RegistrationWithItem{Registration: r}
		if item, ok := f.items.items[r.ItemID]; ok {
			joined.Item = &item
		}
		out = append(out, joined)
	}
	return out, nil
}

type fakeApplicationRepo struct {
	applications map[primitive.ObjectID]models.Application
}

func (f *fakeApplicationRepo) Create(_ context.Context, a *models.Application) (*models.Application, error) {
	a.ID = primitive.NewObjectID()
	f.applications[a.ID] = *a
	return a, nil
}

func (f *fakeApplicationRepo) Find(_ context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		if (filter.Status == "" || a.Status == filter.Status) && (filter.Type == "" || a.Type == filter.Type) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ApplicationStatus, at time.Time) (*models.Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = at
	f.applications[id] = a
	return &a, nil
}
