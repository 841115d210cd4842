package stubapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

const (
	usersCollection = "stub_users"
	prefsCollection = "stub_dashboard_prefs"

	queryTimeout = 10 * time.Second
)

// Repository persists stub users and dashboard preference documents.
type Repository struct {
	users *mongo.Collection
	prefs *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users: db.Collection(usersCollection),
		prefs: db.Collection(prefsCollection),
	}
}

type mongoUser struct {
	ID           string   `bson:"_id"`
	Email        string   `bson:"email"`
	Name         string   `bson:"name,omitempty"`
	PasswordHash string   `bson:"password_hash"`
	IsAdmin      bool     `bson:"is_admin"`
	AppGrants    []string `bson:"app_grants,omitempty"`
	CreatedAt    int64    `bson:"created_at"`
}

type mongoPrefs struct {
	UserID         string            `bson:"_id"`
	PresetType     string            `bson:"preset_type"`
	VisibleWidgets []string          `bson:"visible_widgets"`
	WidgetSizes    map[string]string `bson:"widget_sizes"`
	Layout         map[string]any    `bson:"layout,omitempty"`
}

func (r *Repository) CreateUser(ctx context.Context, u *User) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := mongoUser{
		ID:           uuid.NewString(),
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		AppGrants:    u.AppGrants,
		CreatedAt:    u.CreatedAt.Unix(),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return userFromDoc(doc), nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userFromDoc(doc), nil
}

func (r *Repository) FindUserByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userFromDoc(doc), nil
}

func (r *Repository) FindPreferences(ctx context.Context, userID string) (*domain.DashboardPreferences, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc mongoPrefs
	if err := r.prefs.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	return &domain.DashboardPreferences{
		PresetType:     doc.PresetType,
		VisibleWidgets: doc.VisibleWidgets,
		WidgetSizes:    doc.WidgetSizes,
		Layout:         doc.Layout,
	}, nil
}

// PatchPreferences applies a partial update, upserting the document so a
// new user's first write creates it. Nil patch fields stay untouched.
func (r *Repository) PatchPreferences(ctx context.Context, userID string, patch ports.DashboardPatch) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{}
	if patch.PresetType != nil {
		set["preset_type"] = *patch.PresetType
	}
	if patch.VisibleWidgets != nil {
		set["visible_widgets"] = patch.VisibleWidgets
	}
	if patch.WidgetSizes != nil {
		set["widget_sizes"] = patch.WidgetSizes
	}
	if patch.Layout != nil && !patch.ClearLayout {
		set["layout"] = patch.Layout
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if patch.ClearLayout {
		update["$unset"] = bson.M{"layout": ""}
	}
	if len(update) == 0 {
		return nil
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.prefs.UpdateOne(ctx, bson.M{"_id": userID}, update, opts); err != nil {
		return fmt.Errorf("patch preferences: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique email index on the users collection.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func userFromDoc(doc mongoUser) *User {
	return &User{
		ID:           doc.ID,
		Email:        doc.Email,
		Name:         doc.Name,
		PasswordHash: doc.PasswordHash,
		IsAdmin:      doc.IsAdmin,
		AppGrants:    doc.AppGrants,
		CreatedAt:    time.Unix(doc.CreatedAt, 0).UTC(),
	}
}
