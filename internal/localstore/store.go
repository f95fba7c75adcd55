// Package localstore persists the customer session, address book and
// concept cache between runs.
package localstore

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cwmarketing/loyalty-go/pkg/config"
	pkgerrors "github.com/cwmarketing/loyalty-go/pkg/errors"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

// userRecord is the single-row session snapshot. The fixed key keeps
// upserts trivial; the SDK serves exactly one signed-in customer.
type userRecord struct {
	ID         uint   `gorm:"primaryKey"`
	CustomerID string `gorm:"index"`
	Token      string
	FirstName  string
	LastName   string
	Phone      int64
	Email      *string
	Sex        *string
	DOB        *string
	Card       int64
	Wallet     *string
	Balance    float32
	UpdatedAt  time.Time
}

func (userRecord) TableName() string { return "users" }

type addressRecord struct {
	ID         string `gorm:"primaryKey"`
	ExternalID string
	City       string
	Street     string
	Home       string
	Flat       *int64
	Floor      *int64
	Entrance   *int64
	Lat        *float64
	Lon        *float64
	CreatedAt  time.Time
}

func (addressRecord) TableName() string { return "addresses" }

type conceptRecord struct {
	ID             string `gorm:"primaryKey"`
	Name           string
	DisplayOrder   int64
	MainGroupID    string
	MainTerminalID string
	UpdatedAt      time.Time
}

func (conceptRecord) TableName() string { return "concepts" }

const sessionKey = 1

// ErrNoSession is returned when no customer has signed in yet.
var ErrNoSession = pkgerrors.New(pkgerrors.CodeNotFound, "no stored session")

type Store struct {
	db   *gorm.DB
	logg *logger.Logger
}

// Open opens (or creates) the sqlite store and migrates its schema.
func Open(cfg config.LocalStoreConfig, logg *logger.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open local store")
	}
	if err := db.AutoMigrate(&userRecord{}, &addressRecord{}, &conceptRecord{}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "migrate local store")
	}
	return &Store{db: db, logg: logg}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveToken upserts the session row with a fresh access token.
func (s *Store) SaveToken(token string) error {
	record := userRecord{ID: sessionKey}
	err := s.db.Where("id = ?", sessionKey).First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	record.ID = sessionKey
	record.Token = token
	record.UpdatedAt = time.Now()
	return s.db.Save(&record).Error
}

// SaveProfile refreshes the cached profile fields, keeping the token.
func (s *Store) SaveProfile(profile models.Profile) error {
	record := userRecord{ID: sessionKey}
	err := s.db.Where("id = ?", sessionKey).First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	record.ID = sessionKey
	record.CustomerID = profile.ID
	record.FirstName = profile.FirstName
	record.LastName = profile.LastName
	record.Phone = profile.Phone
	record.Email = profile.Email
	record.Sex = profile.Sex
	record.DOB = profile.DOB
	record.Card = profile.Card
	record.Wallet = profile.Wallet.Card
	record.Balance = profile.Balances.Total
	record.UpdatedAt = time.Now()
	return s.db.Save(&record).Error
}

// Token returns the stored access token, ErrNoSession when absent.
func (s *Store) Token() (string, error) {
	var record userRecord
	err := s.db.Where("id = ?", sessionKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	if record.Token == "" {
		return "", ErrNoSession
	}
	return record.Token, nil
}

// Profile returns the cached profile snapshot.
func (s *Store) Profile() (*models.Profile, error) {
	var record userRecord
	err := s.db.Where("id = ?", sessionKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:        record.CustomerID,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Phone:     record.Phone,
		Email:     record.Email,
		Sex:       record.Sex,
		DOB:       record.DOB,
		Card:      record.Card,
		Wallet:    models.Wallet{Card: record.Wallet},
		Balances:  models.Balances{Total: record.Balance},
	}, nil
}

// Reset wipes the session on sign-out. Addresses and the concept cache
// survive.
func (s *Store) Reset() error {
	return s.db.Where("id = ?", sessionKey).Delete(&userRecord{}).Error
}

// SaveAddress stores an address, minting a local id when absent.
func (s *Store) SaveAddress(address models.Address) (models.Address, error) {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	record := addressRecord{
		ID:         address.ID.String(),
		ExternalID: address.ExternalID,
		City:       address.City,
		Street:     address.Street,
		Home:       address.Home,
		Flat:       address.Flat,
		Floor:      address.Floor,
		Entrance:   address.Entrance,
		Lat:        address.Lat,
		Lon:        address.Lon,
	}
	if err := s.db.Save(&record).Error; err != nil {
		return models.Address{}, err
	}
	return address, nil
}

func (s *Store) Addresses() ([]models.Address, error) {
	var records []addressRecord
	if err := s.db.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]models.Address, 0, len(records))
	for _, r := range records {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			continue
		}
		out = append(out, models.Address{
			ID:         id,
			ExternalID: r.ExternalID,
			City:       r.City,
			Street:     r.Street,
			Home:       r.Home,
			Flat:       r.Flat,
			Floor:      r.Floor,
			Entrance:   r.Entrance,
			Lat:        r.Lat,
			Lon:        r.Lon,
		})
	}
	return out, nil
}

func (s *Store) DeleteAddress(id uuid.UUID) error {
	return s.db.Where("id = ?", id.String()).Delete(&addressRecord{}).Error
}

// RefreshConcepts replaces the concept cache with the fetched list:
// upsert every entry, sweep the rest.
func (s *Store) RefreshConcepts(concepts []models.Concept) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		keep := make([]string, 0, len(concepts))
		for _, c := range concepts {
			record := conceptRecord{
				ID:             c.ID,
				Name:           c.Name,
				DisplayOrder:   c.Order,
				MainGroupID:    c.MainGroupID,
				MainTerminalID: c.MainTerminalID,
				UpdatedAt:      time.Now(),
			}
			if err := tx.Save(&record).Error; err != nil {
				return err
			}
			keep = append(keep, c.ID)
		}
		if len(keep) == 0 {
			return tx.Where("1 = 1").Delete(&conceptRecord{}).Error
		}
		return tx.Where("id NOT IN ?", keep).Delete(&conceptRecord{}).Error
	})
}

// Concepts returns the cached concepts in display order.
func (s *Store) Concepts() ([]models.Concept, error) {
	var records []conceptRecord
	if err := s.db.Order("display_order ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]models.Concept, 0, len(records))
	for _, r := range records {
		out = append(out, models.Concept{
			ID:             r.ID,
			Name:           r.Name,
			Order:          r.DisplayOrder,
			MainGroupID:    r.MainGroupID,
			MainTerminalID: r.MainTerminalID,
		})
	}
	return out, nil
}
