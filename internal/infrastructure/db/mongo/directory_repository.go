package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pairchat/chat-service/internal/core/domain"
)

const (
	usersCollection     = "users"
	passcodesCollection = "passcodes"
)

// DirectoryRepository is the MongoDB identity directory: account records in
// `users` and the passcode-to-owner mapping in `passcodes`. The passcode
// document id is the code itself, so reservation is an atomic insert and two
// concurrent signups can never claim the same code.
type DirectoryRepository struct {
	users     *mongo.Collection
	passcodes *mongo.Collection
}

func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{
		users:     db.Collection(usersCollection),
		passcodes: db.Collection(passcodesCollection),
	}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *DirectoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type userDoc struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Passcode     string `bson:"passcode"`
	CreatedAt    int64  `bson:"created_at"`
	IsOnline     bool   `bson:"is_online"`
	LastSeen     int64  `bson:"last_seen,omitempty"`
}

type passcodeDoc struct {
	Code      string `bson:"_id"`
	OwnerID   string `bson:"owner_id"`
	OwnerName string `bson:"owner_name"`
}

func (r *DirectoryRepository) CreateAccount(ctx context.Context, a *domain.Account) error {
	doc := userDoc{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Passcode:     a.Passcode,
		CreatedAt:    a.CreatedAt.UnixMilli(),
		IsOnline:     a.IsOnline,
		LastSeen:     millis(a.LastSeen),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailInUse
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findAccount(ctx, bson.M{"email": email})
}

func (r *DirectoryRepository) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findAccount(ctx, bson.M{"_id": id})
}

func (r *DirectoryRepository) findAccount(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	return &domain.Account{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Passcode:     doc.Passcode,
		CreatedAt:    fromMillis(doc.CreatedAt),
		IsOnline:     doc.IsOnline,
		LastSeen:     fromMillis(doc.LastSeen),
	}, nil
}

func (r *DirectoryRepository) UpdateDisplayName(ctx context.Context, id, name string) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *DirectoryRepository) ReservePasscode(ctx context.Context, e *domain.PasscodeEntry) error {
	doc := passcodeDoc{Code: e.Code, OwnerID: e.OwnerID, OwnerName: e.OwnerName}
	if _, err := r.passcodes.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPasscodeTaken
		}
		return fmt.Errorf("reserve passcode: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) ReleasePasscode(ctx context.Context, code string) error {
	if _, err := r.passcodes.DeleteOne(ctx, bson.M{"_id": code}); err != nil {
		return fmt.Errorf("release passcode: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) FindPasscode(ctx context.Context, code string) (*domain.PasscodeEntry, error) {
	var doc passcodeDoc
	if err := r.passcodes.FindOne(ctx, bson.M{"_id": code}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUnknownPasscode
		}
		return nil, fmt.Errorf("find passcode: %w", err)
	}
	return &domain.PasscodeEntry{Code: doc.Code, OwnerID: doc.OwnerID, OwnerName: doc.OwnerName}, nil
}

func (r *DirectoryRepository) UpdatePresence(ctx context.Context, id string, online bool, at time.Time) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_online": online,
		"last_seen": at.UnixMilli(),
	}})
	if err != nil {
		return fmt.Errorf("update presence: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *DirectoryRepository) GetPresence(ctx context.Context, id string) (*domain.Presence, error) {
	var doc userDoc
	opts := options.FindOne().SetProjection(bson.M{"is_online": 1, "last_seen": 1})
	if err := r.users.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get presence: %w", err)
	}
	return &domain.Presence{UserID: id, IsOnline: doc.IsOnline, LastSeen: fromMillis(doc.LastSeen)}, nil
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
