package repository

import (
	"context"
	"errors"
	"gorm.io/gorm"
	"storefront/models"
)

// ErrNotFound is returned by single-record lookups that match nothing.
var ErrNotFound = errors.New("record not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDForUpdate(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, login string) (*models.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) (int64, error)
}

type CartRepository interface {
	UpsertIncrement(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	FindByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Find(ctx context.Context, userID, productID string) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	Delete(ctx context.Context, userID, productID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByName(ctx context.Context, adminname string) (*models.Admin, error)
	FindAll(ctx context.Context) ([]models.Admin, error)
}

// Store groups the repositories so services can run several of them in one transaction.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Cart() CartRepository
	Admins() AdminRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository       { return &userRepository{db: s.db} }
func (s *GormStore) Products() ProductRepository { return &productRepository{db: s.db} }
func (s *GormStore) Cart() CartRepository        { return &cartRepository{db: s.db} }
func (s *GormStore) Admins() AdminRepository     { return &adminRepository{db: s.db} }

// Transaction commits when fn returns nil and rolls back otherwise.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Admin{},
	)
}
