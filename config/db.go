package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cms-backend/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// ResolveMySQLDSN prefers MYSQL_URL/DATABASE_URL and falls back to the DB_* parts.
func ResolveMySQLDSN(s DatabaseSettings) (string, error) {
	if s.URL != "" {
		if strings.HasPrefix(s.URL, "mysql://") {
			return mysqlDSNFromURL(s.URL)
		}
		return s.URL, nil
	}
	if s.Name == "" {
		return "", errors.New("DB_NAME is required")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		s.User, s.Password, s.Host, s.Port, s.Name,
	), nil
}

func dialector(s DatabaseSettings) (gorm.Dialector, error) {
	switch s.Driver {
	case "sqlite":
		return sqlite.Open(s.SQLitePath), nil
	case "mysql", "":
		dsn, err := ResolveMySQLDSN(s)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", s.Driver)
	}
}

// ConnectDatabase opens the database, migrates every model and seeds the
// default admin and site settings rows.
func ConnectDatabase(s *Settings, log *zap.Logger) (*gorm.DB, error) {
	d, err := dialector(s.DB)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: NewGormLogger(log, time.Second), TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedDefaults(db, s, log); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedDefaults creates the first admin from ADMIN_EMAIL/ADMIN_PASSWORD when the
// admins table is empty, and the site_settings row when it is missing.
func SeedDefaults(db *gorm.DB, s *Settings, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	var adminCount int64
	if err := db.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if adminCount == 0 {
		if s.AdminEmail == "" || s.AdminPassword == "" {
			log.Warn("no admin accounts and ADMIN_EMAIL/ADMIN_PASSWORD not set; console login disabled")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(s.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash default admin password: %w", err)
			}
			admin := models.Admin{FullName: "Administrator", Email: strings.ToLower(s.AdminEmail), Password: string(hash)}
			if err := db.Create(&admin).Error; err != nil {
				return fmt.Errorf("create default admin: %w", err)
			}
			log.Info("default admin seeded", zap.String("email", admin.Email))
		}
	}

	var settingsCount int64
	if err := db.Model(&models.SiteSetting{}).Count(&settingsCount).Error; err != nil {
		return fmt.Errorf("count site settings: %w", err)
	}
	if settingsCount == 0 {
		if err := db.Create(&models.SiteSetting{CompanyName: "Company"}).Error; err != nil {
			return fmt.Errorf("create site settings: %w", err)
		}
		log.Info("site settings row created")
	}
	return nil
}
