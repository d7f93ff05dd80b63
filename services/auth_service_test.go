package services

import (
	"context"
	"testing"
	"time"

	"cms-backend/models"
	"cms-backend/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func createAdmin(t *testing.T, db *gorm.DB, email, password string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.Admin{FullName: "Administrator", Email: email, Password: string(hash)}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func TestAuthLogin(t *testing.T) {
	db := testutil.NewDB(t)
	createAdmin(t, db, "admin@nusantarafarma.co.id", "correct horse")
	svc := NewAuthService(db, "unit-test-secret", time.Hour)
	ctx := context.Background()

	token, admin, err := svc.Login(ctx, " Admin@NusantaraFarma.co.id ", "correct horse")
	require.NoError(t, err)
	require.NotNil(t, admin.LastLoginAt)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, "admin@nusantarafarma.co.id", claims.Email)
	assert.Equal(t, "cms-backend", claims.Issuer)

	var stored models.Admin
	require.NoError(t, db.First(&stored, admin.ID).Error)
	assert.NotNil(t, stored.LastLoginAt)

	_, _, err = svc.Login(ctx, "admin@nusantarafarma.co.id", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@nusantarafarma.co.id", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthParseTokenRejects(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, "unit-test-secret", time.Hour)
	admin := &models.Admin{ID: 7, Email: "admin@nusantarafarma.co.id"}

	t.Run("expired", func(t *testing.T) {
		token, err := svc.Issue(admin, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)
		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewAuthService(db, "another-secret", time.Hour)
		token, err := other.Issue(admin, time.Now())
		require.NoError(t, err)
		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Issuer:    "cms-backend",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("unit-test-secret"))
		require.NoError(t, err)
		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSettingsService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSettingsService(db)
	ctx := context.Background()

	site, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, site.ID, "no row yet")

	site, err = svc.Update(ctx, SiteSettingsPayload{CompanyName: "Nusantara Farma", Phone: "+62 21 5550 1000"})
	require.NoError(t, err)
	require.NotEmpty(t, site.ID)
	firstID := site.ID

	require.NoError(t, db.Model(&models.SiteSetting{}).Where("id = ?", firstID).UpdateColumn("visitor_count", 42).Error)

	site, err = svc.Update(ctx, SiteSettingsPayload{CompanyName: "PT Nusantara Farma Tbk"})
	require.NoError(t, err)
	assert.Equal(t, firstID, site.ID)
	assert.Equal(t, "PT Nusantara Farma Tbk", site.CompanyName)
	assert.Empty(t, site.Phone)
	assert.Equal(t, int64(42), site.VisitorCount, "visitor counter is not editable")

	var n int64
	require.NoError(t, db.Model(&models.SiteSetting{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestSettingsUpdateKeepsConcurrentVisits(t *testing.T) {
	db := testutil.NewDB(t)
	seedSettings(t, db)
	svc := NewSettingsService(db)

	// A visit lands between the read and the write of the update.
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:visit", func(tx *gorm.DB) {
		if tx.Statement.Table == "site_settings" {
			tx.Session(&gorm.Session{NewDB: true}).Exec("UPDATE site_settings SET visitor_count = visitor_count + 1")
		}
	}))

	site, err := svc.Update(context.Background(), SiteSettingsPayload{CompanyName: "PT Nusantara Farma Tbk"})
	require.NoError(t, err)
	assert.Equal(t, "PT Nusantara Farma Tbk", site.CompanyName)
	assert.Equal(t, int64(1), site.VisitorCount)
	assert.Equal(t, int64(1), visitorCount(t, db))
}
