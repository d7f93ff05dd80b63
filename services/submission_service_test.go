package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cms-backend/models"
	"cms-backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSubmissionService(t *testing.T) (*SubmissionService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewSubmissionService(db, NewGuard(30*time.Second), NewCaptchaStore(time.Minute), zap.NewNop())
	return svc, db
}

func validContact(t *testing.T, svc *SubmissionService) ContactForm {
	t.Helper()
	ch, err := svc.Captcha()
	require.NoError(t, err)
	return ContactForm{
		Name:          "Budi Santoso",
		Email:         "Budi.Santoso@Apotek-Sehat.co.id",
		Phone:         "081234567890",
		Company:       "Apotek Sehat",
		Subject:       "Kerja sama distribusi",
		Message:       "Kami tertarik menjadi mitra distribusi untuk wilayah Bandung.",
		CaptchaID:     ch.ID,
		CaptchaAnswer: solve(t, ch),
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSubmitContactStoresMessage(t *testing.T) {
	svc, db := newSubmissionService(t)

	res, err := svc.SubmitContact(context.Background(), validContact(t, svc), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Dropped)
	assert.NotEmpty(t, res.ID)

	var msg models.ContactMessage
	require.NoError(t, db.First(&msg, "id = ?", res.ID).Error)
	assert.Equal(t, "budi.santoso@apotek-sehat.co.id", msg.Email)
	assert.False(t, msg.IsRead)
}

func TestSubmitContactHoneypotDoesNotInsert(t *testing.T) {
	svc, db := newSubmissionService(t)

	form := validContact(t, svc)
	form.Website = "http://spam.example"

	res, err := svc.SubmitContact(context.Background(), form, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Dropped)
	assert.Zero(t, countRows(t, db, &models.ContactMessage{}))
}

func TestSubmitContactWrongCaptchaIssuesNewQuestion(t *testing.T) {
	svc, db := newSubmissionService(t)

	form := validContact(t, svc)
	form.CaptchaAnswer = "99"

	_, err := svc.SubmitContact(context.Background(), form, "10.0.0.1")
	require.ErrorIs(t, err, ErrCaptcha)

	var ce *CaptchaError
	require.True(t, errors.As(err, &ce))
	assert.NotEmpty(t, ce.Next.ID)
	assert.NotEqual(t, form.CaptchaID, ce.Next.ID)
	assert.Regexp(t, questionPattern, ce.Next.Question)
	assert.Zero(t, countRows(t, db, &models.ContactMessage{}))

	// The replacement question is answerable.
	form.CaptchaID = ce.Next.ID
	form.CaptchaAnswer = solve(t, ce.Next)
	_, err = svc.SubmitContact(context.Background(), form, "10.0.0.1")
	require.NoError(t, err)
}

func TestSubmitContactCooldown(t *testing.T) {
	svc, db := newSubmissionService(t)
	ctx := context.Background()

	_, err := svc.SubmitContact(ctx, validContact(t, svc), "10.0.0.1")
	require.NoError(t, err)

	_, err = svc.SubmitContact(ctx, validContact(t, svc), "10.0.0.1")
	require.ErrorIs(t, err, ErrCooldown)
	var cd *CooldownError
	require.True(t, errors.As(err, &cd))
	assert.Greater(t, cd.RetryAfter, time.Duration(0))

	_, err = svc.SubmitContact(ctx, validContact(t, svc), "10.0.0.2")
	require.NoError(t, err, "another client is not throttled")

	assert.Equal(t, int64(2), countRows(t, db, &models.ContactMessage{}))
}

func TestSubmitContactRejectsContent(t *testing.T) {
	svc, db := newSubmissionService(t)
	ctx := context.Background()

	form := validContact(t, svc)
	form.Message = "<script>document.location='http://evil'</script>"
	_, err := svc.SubmitContact(ctx, form, "10.0.0.1")
	require.ErrorIs(t, err, ErrBlocked)

	form = validContact(t, svc)
	form.Name = "asdf"
	_, err = svc.SubmitContact(ctx, form, "10.0.0.1")
	require.ErrorIs(t, err, ErrBlocked)

	form = validContact(t, svc)
	form.Email = "not-an-email"
	_, err = svc.SubmitContact(ctx, form, "10.0.0.1")
	require.ErrorIs(t, err, ErrInvalidEmail)

	assert.Zero(t, countRows(t, db, &models.ContactMessage{}))

	// Rejected attempts do not start the cooldown.
	_, err = svc.SubmitContact(ctx, validContact(t, svc), "10.0.0.1")
	require.NoError(t, err)
}

func createCareer(t *testing.T, db *gorm.DB, active bool, closesAt *time.Time) models.Career {
	t.Helper()
	c := models.Career{TitleID: "Apoteker", TitleEN: "Pharmacist", Department: "Operations", Location: "Jakarta", ClosesAt: closesAt}
	c.IsActive = true
	require.NoError(t, db.Create(&c).Error)
	if !active {
		require.NoError(t, db.Model(&c).Update("is_active", false).Error)
		c.IsActive = false
	}
	return c
}

func validApplication(t *testing.T, svc *SubmissionService) ApplicationForm {
	t.Helper()
	ch, err := svc.Captcha()
	require.NoError(t, err)
	return ApplicationForm{
		FullName:      "Dewi Lestari",
		Email:         "dewi.lestari@gmail.com",
		Phone:         "081298765432",
		ResumeURL:     "https://drive.google.com/file/d/abc123/view",
		CoverLetter:   "Saya memiliki pengalaman lima tahun sebagai apoteker.",
		CaptchaID:     ch.ID,
		CaptchaAnswer: solve(t, ch),
	}
}

func TestApply(t *testing.T) {
	svc, db := newSubmissionService(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	open := createCareer(t, db, true, nil)
	closed := createCareer(t, db, true, &past)
	inactive := createCareer(t, db, false, nil)

	t.Run("open career", func(t *testing.T) {
		res, err := svc.Apply(ctx, open.ID, validApplication(t, svc), "10.0.0.1")
		require.NoError(t, err)

		var app models.JobApplication
		require.NoError(t, db.First(&app, "id = ?", res.ID).Error)
		assert.Equal(t, open.ID, app.CareerID)
		assert.Equal(t, "new", app.Status)
	})

	t.Run("closed and inactive careers", func(t *testing.T) {
		_, err := svc.Apply(ctx, closed.ID, validApplication(t, svc), "10.0.0.2")
		assert.ErrorIs(t, err, ErrCareerClosed)
		_, err = svc.Apply(ctx, inactive.ID, validApplication(t, svc), "10.0.0.2")
		assert.ErrorIs(t, err, ErrCareerClosed)
	})

	t.Run("unknown career", func(t *testing.T) {
		_, err := svc.Apply(ctx, "missing", validApplication(t, svc), "10.0.0.2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("honeypot", func(t *testing.T) {
		form := validApplication(t, svc)
		form.Website = "filled"
		res, err := svc.Apply(ctx, open.ID, form, "10.0.0.3")
		require.NoError(t, err)
		assert.True(t, res.Dropped)
	})

	assert.Equal(t, int64(1), countRows(t, db, &models.JobApplication{}))
}

func TestOpenCareers(t *testing.T) {
	svc, db := newSubmissionService(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	a := createCareer(t, db, true, nil)
	b := createCareer(t, db, true, &future)
	createCareer(t, db, true, &past)
	createCareer(t, db, false, nil)

	careers, err := svc.OpenCareers(context.Background())
	require.NoError(t, err)

	ids := []string{}
	for _, c := range careers {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}
