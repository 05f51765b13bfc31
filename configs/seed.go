package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin account. Returns false when skipped.
func SeedAdmin(db *gorm.DB, cfg *Config) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      entity.RoleAdmin,
		IsActive:  true,
	}
	return true, db.Create(&admin).Error
}

// SeedDefaults makes sure an empty install has a tax rule to recalculate with.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.TaxSetting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&entity.TaxSetting{
		Name:     "No Tax",
		Type:     entity.TaxFree,
		Rate:     decimal.Zero,
		IsActive: true,
	}).Error
}

// SeedFile is the layout of a demo data file.
type SeedFile struct {
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		SortOrder   int    `yaml:"sortOrder"`
		Items       []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Price       string `yaml:"price"`
			Vegetarian  bool   `yaml:"vegetarian"`
			PrepMinutes int    `yaml:"prepMinutes"`
		} `yaml:"items"`
	} `yaml:"categories"`
	Tables []struct {
		Number   string `yaml:"number"`
		Capacity int    `yaml:"capacity"`
		Location string `yaml:"location"`
	} `yaml:"tables"`
	Taxes []struct {
		Name   string `yaml:"name"`
		Type   string `yaml:"type"`
		Rate   string `yaml:"rate"`
		Active bool   `yaml:"active"`
	} `yaml:"taxes"`
	Customers []struct {
		Name  string `yaml:"name"`
		Phone string `yaml:"phone"`
		Email string `yaml:"email"`
	} `yaml:"customers"`
}

// SeedFromFile loads demo data. Existing rows (matched by name/number/phone) are kept.
func SeedFromFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range f.Categories {
			if strings.TrimSpace(c.Name) == "" {
				return errors.New("category without a name")
			}
			cat := entity.Category{}
			if err := tx.Where(entity.Category{Name: c.Name}).
				Attrs(entity.Category{Description: c.Description, SortOrder: c.SortOrder, IsActive: true}).
				FirstOrCreate(&cat).Error; err != nil {
				return err
			}
			for _, it := range c.Items {
				if strings.TrimSpace(it.Name) == "" {
					return fmt.Errorf("category %q: item without a name", c.Name)
				}
				price, err := decimal.NewFromString(it.Price)
				if err != nil {
					return fmt.Errorf("item %q: bad price %q", it.Name, it.Price)
				}
				if !price.IsPositive() {
					return fmt.Errorf("item %q: price must be greater than 0", it.Name)
				}
				item := entity.MenuItem{}
				if err := tx.Where(entity.MenuItem{Name: it.Name, CategoryID: cat.ID}).
					Attrs(entity.MenuItem{
						Description:  it.Description,
						Price:        price,
						IsAvailable:  true,
						IsVegetarian: it.Vegetarian,
						PrepMinutes:  it.PrepMinutes,
					}).
					FirstOrCreate(&item).Error; err != nil {
					return err
				}
			}
		}

		for _, t := range f.Tables {
			if strings.TrimSpace(t.Number) == "" {
				return errors.New("table without a number")
			}
			if t.Capacity < 1 {
				return fmt.Errorf("table %q: capacity must be at least 1", t.Number)
			}
			table := entity.DiningTable{}
			if err := tx.Where(entity.DiningTable{Number: t.Number}).
				Attrs(entity.DiningTable{Capacity: t.Capacity, Location: t.Location, Status: entity.TableAvailable}).
				FirstOrCreate(&table).Error; err != nil {
				return err
			}
		}

		for _, tr := range f.Taxes {
			if strings.TrimSpace(tr.Name) == "" {
				return errors.New("tax without a name")
			}
			if !entity.ValidTaxType(tr.Type) {
				return fmt.Errorf("tax %q: bad type %q", tr.Name, tr.Type)
			}
			rate := decimal.Zero
			if tr.Rate != "" {
				if rate, err = decimal.NewFromString(tr.Rate); err != nil {
					return fmt.Errorf("tax %q: bad rate %q", tr.Name, tr.Rate)
				}
			}
			if tr.Active {
				if err := tx.Model(&entity.TaxSetting{}).Where("is_active = ?", true).
					Update("is_active", false).Error; err != nil {
					return err
				}
			}
			setting := entity.TaxSetting{}
			if err := tx.Where(entity.TaxSetting{Name: tr.Name}).
				Assign(map[string]any{"type": tr.Type, "rate": rate, "is_active": tr.Active}).
				FirstOrCreate(&setting).Error; err != nil {
				return err
			}
		}

		for _, c := range f.Customers {
			if strings.TrimSpace(c.Phone) == "" {
				return fmt.Errorf("customer %q: phone is required", c.Name)
			}
			cust := entity.Customer{}
			if err := tx.Where(entity.Customer{Phone: c.Phone}).
				Attrs(entity.Customer{Name: c.Name, Email: c.Email, TotalSpent: decimal.Zero}).
				FirstOrCreate(&cust).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
