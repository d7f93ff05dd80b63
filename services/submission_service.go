package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cms-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrCareerClosed = errors.New("career is no longer accepting applications")

type ContactForm struct {
	Name          string `json:"name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,max=150"`
	Phone         string `json:"phone" binding:"max=50"`
	Company       string `json:"company" binding:"max=255"`
	Subject       string `json:"subject" binding:"max=255"`
	Message       string `json:"message" binding:"required,max=5000"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
	Website       string `json:"website"`
}

type ApplicationForm struct {
	FullName      string `json:"full_name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,max=150"`
	Phone         string `json:"phone" binding:"max=50"`
	ResumeURL     string `json:"resume_url" binding:"max=512"`
	CoverLetter   string `json:"cover_letter" binding:"max=5000"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
	Website       string `json:"website"`
}

// SubmitResult reports the stored row id. Dropped is set when the honeypot
// tripped; the caller answers as if the submission succeeded.
type SubmitResult struct {
	ID      string `json:"id,omitempty"`
	Dropped bool   `json:"-"`
}

// SubmissionService stores contact messages and job applications after the
// honeypot, captcha, cooldown and content checks pass.
type SubmissionService struct {
	db      *gorm.DB
	guard   *Guard
	captcha *CaptchaStore
	log     *zap.Logger
	now     func() time.Time
}

func NewSubmissionService(db *gorm.DB, guard *Guard, captcha *CaptchaStore, log *zap.Logger) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{db: db, guard: guard, captcha: captcha, log: log, now: time.Now}
}

// Captcha issues a fresh question for a form.
func (s *SubmissionService) Captcha() (Challenge, error) {
	return s.captcha.New()
}

func (s *SubmissionService) precheck(key, captchaID, answer string) error {
	if !s.captcha.Verify(captchaID, answer) {
		next, err := s.captcha.New()
		if err != nil {
			return fmt.Errorf("issue captcha: %w", err)
		}
		return &CaptchaError{Next: next}
	}
	if left, waiting := s.guard.Remaining(key); waiting {
		return &CooldownError{RetryAfter: left}
	}
	return nil
}

// insert reserves the cooldown slot, then writes row. The slot is released
// again when the write fails.
func (s *SubmissionService) insert(ctx context.Context, key string, row any) error {
	if left, ok := s.guard.Reserve(key); !ok {
		return &CooldownError{RetryAfter: left}
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		s.guard.Release(key)
		return err
	}
	return nil
}

func (s *SubmissionService) SubmitContact(ctx context.Context, f ContactForm, clientKey string) (SubmitResult, error) {
	if s.guard.Honeypot(f.Website) {
		s.log.Info("contact honeypot tripped", zap.String("client", clientKey))
		return SubmitResult{Dropped: true}, nil
	}

	key := "contact:" + clientKey
	if err := s.precheck(key, f.CaptchaID, f.CaptchaAnswer); err != nil {
		return SubmitResult{}, err
	}

	email, err := NormalizeEmail(f.Email)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.guard.CheckFields(map[string]string{
		"name":    f.Name,
		"email":   email,
		"phone":   f.Phone,
		"company": f.Company,
		"subject": f.Subject,
		"message": f.Message,
	}); err != nil {
		return SubmitResult{}, err
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(f.Name),
		Email:   email,
		Phone:   strings.TrimSpace(f.Phone),
		Company: strings.TrimSpace(f.Company),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
	if err := s.insert(ctx, key, msg); err != nil {
		return SubmitResult{}, fmt.Errorf("store contact message: %w", err)
	}
	return SubmitResult{ID: msg.ID}, nil
}

// OpenCareers lists active careers whose closing date has not passed.
func (s *SubmissionService) OpenCareers(ctx context.Context) ([]models.Career, error) {
	careers := make([]models.Career, 0)
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("closes_at IS NULL OR closes_at > ?", s.now()).
		Order("sort_order ASC, created_at ASC").
		Find(&careers).Error
	if err != nil {
		return nil, fmt.Errorf("list careers: %w", err)
	}
	return careers, nil
}

func (s *SubmissionService) Apply(ctx context.Context, careerID string, f ApplicationForm, clientKey string) (SubmitResult, error) {
	if s.guard.Honeypot(f.Website) {
		s.log.Info("career honeypot tripped", zap.String("client", clientKey), zap.String("career_id", careerID))
		return SubmitResult{Dropped: true}, nil
	}

	var career models.Career
	if err := s.db.WithContext(ctx).First(&career, "id = ?", careerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmitResult{}, ErrNotFound
		}
		return SubmitResult{}, fmt.Errorf("load career: %w", err)
	}
	if !career.IsOpen(s.now()) {
		return SubmitResult{}, ErrCareerClosed
	}

	key := "apply:" + clientKey
	if err := s.precheck(key, f.CaptchaID, f.CaptchaAnswer); err != nil {
		return SubmitResult{}, err
	}

	email, err := NormalizeEmail(f.Email)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.guard.CheckFields(map[string]string{
		"full_name":    f.FullName,
		"email":        email,
		"phone":        f.Phone,
		"resume_url":   f.ResumeURL,
		"cover_letter": f.CoverLetter,
	}); err != nil {
		return SubmitResult{}, err
	}

	app := &models.JobApplication{
		CareerID:    career.ID,
		FullName:    strings.TrimSpace(f.FullName),
		Email:       email,
		Phone:       strings.TrimSpace(f.Phone),
		ResumeURL:   strings.TrimSpace(f.ResumeURL),
		CoverLetter: strings.TrimSpace(f.CoverLetter),
		Status:      "new",
	}
	if err := s.insert(ctx, key, app); err != nil {
		return SubmitResult{}, fmt.Errorf("store job application: %w", err)
	}
	return SubmitResult{ID: app.ID}, nil
}
