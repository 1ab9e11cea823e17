package auth

import (
	"context"
	"errors"

	"chefotw/config"
	"chefotw/db"
	"chefotw/mailer"
	"chefotw/models"
	"chefotw/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateEmail is returned by a UserStore when the unique email index
// rejects an insert.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore is the account persistence used by signup and login.
// FindByEmail returns nil with a nil error when no account exists.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// AuthService handles signup, login and token verification.
type AuthService struct {
	cfg    *config.Config
	mailer mailer.Sender
	users  UserStore
}

func NewAuthService(cfg *config.Config, m mailer.Sender) *AuthService {
	return &AuthService{cfg: cfg, mailer: m, users: mongoUserStore{}}
}

// mongoUserStore is the collection-backed implementation used in production.
type mongoUserStore struct{}

func (mongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (mongoUserStore) Insert(ctx context.Context, user *models.User) error {
	res, err := db.UserCollection.InsertOne(ctx, *user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// Email providers accepted at signup.
var validEmailProviders = []string{"gmail.com", "yahoo.com", "outlook.com", "zoho.com"}

func validEmailProvider(email string) bool {
	at := -1
	for i, c := range email {
		if c == '@' {
			if at >= 0 {
				return false
			}
			at = i
		}
	}
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return utils.Contains(validEmailProviders, email[at+1:])
}

// validPassword requires at least 6 characters with one digit, one
// lowercase and one uppercase letter.
func validPassword(pw string) bool {
	if len(pw) < 6 {
		return false
	}
	var hasDigit, hasLower, hasUpper bool
	for _, c := range pw {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}
