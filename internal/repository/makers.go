package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

// AuthCodeRepository manages invitation codes
type AuthCodeRepository struct {
	*Collection[domain.AuthCode]
	makers *Collection[domain.Maker]
}

func findCode(codes []domain.AuthCode, code string) int {
	return slices.IndexFunc(codes, func(c domain.AuthCode) bool { return c.Code == code })
}

// Generate issues a new unused code worth initialPoints. A value of zero or
// less issues domain.DefaultInitialPoints.
func (r *AuthCodeRepository) Generate(ctx context.Context, initialPoints int) (*domain.AuthCode, error) {
	if initialPoints <= 0 {
		initialPoints = domain.DefaultInitialPoints
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	codes, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	code := ""
	for attempt := 0; attempt < 100; attempt++ {
		candidate := formatCode(now, rand.IntN(100))
		if findCode(codes, candidate) < 0 {
			code = candidate
			break
		}
	}
	if code == "" {
		return nil, errors.New("failed to find a free auth code")
	}

	ac := domain.AuthCode{
		ID:            r.newID(prefixAuthCode),
		Code:          code,
		InitialPoints: initialPoints,
		CreatedAt:     now,
	}
	codes = append(codes, ac)
	if err := r.saveAll(ctx, r.write(codes)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpCreated, ac.ID)
	return &ac, nil
}

// formatCode returns "MAKER" followed by the last six digits of the clock in
// milliseconds and two random digits
func formatCode(now time.Time, suffix int) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return fmt.Sprintf("MAKER%s%02d", ms, suffix)
}

// Validate reports whether code exists and is unused, and the points it is
// worth. It has no side effects.
func (r *AuthCodeRepository) Validate(ctx context.Context, code string) (points int, ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes, err := r.load(ctx)
	if err != nil {
		return 0, false, err
	}
	i := findCode(codes, code)
	if i < 0 || codes[i].IsUsed {
		return 0, false, nil
	}
	return codes[i].InitialPoints, true, nil
}

// MarkUsed consumes code on behalf of an existing maker and credits the
// maker with the code's points. It returns ErrAuthCodeInvalid for unknown
// or used codes and ErrMakerNotFound for unknown makers.
func (r *AuthCodeRepository) MarkUsed(ctx context.Context, code, makerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	i := findCode(codes, code)
	if i < 0 || codes[i].IsUsed {
		return 0, ErrAuthCodeInvalid
	}
	makers, err := r.makers.load(ctx)
	if err != nil {
		return 0, err
	}
	m := indexOf(makers, makerID)
	if m < 0 {
		return 0, ErrMakerNotFound
	}

	points := consume(&codes[i], makerID, r.now())
	makers[m].Points += points
	if err := r.saveAll(ctx, r.write(codes), r.makers.write(makers)); err != nil {
		return 0, err
	}
	r.notify(r.key, events.OpUpdated, codes[i].ID)
	r.notify(r.makers.key, events.OpUpdated, makerID)
	return points, nil
}

func consume(c *domain.AuthCode, makerID string, at time.Time) int {
	c.IsUsed = true
	c.UsedBy = makerID
	c.UsedAt = &at
	return c.InitialPoints
}

// MakerRepository manages maker accounts
type MakerRepository struct {
	*Collection[domain.Maker]
	codes     *Collection[domain.AuthCode]
	passwords passwords
}

func findUsername(makers []domain.Maker, username string) int {
	return slices.IndexFunc(makers, func(m domain.Maker) bool { return m.Username == username })
}

// GetByUsername returns the maker with username, or nil if there is none
func (r *MakerRepository) GetByUsername(ctx context.Context, username string) (*domain.Maker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	makers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := findUsername(makers, username); i >= 0 {
		return &makers[i], nil
	}
	return nil, nil
}

// Register creates a maker by redeeming code. The code check, the new
// account and the consumed code are committed together under one lock; if
// the code cannot be written the new account is rolled back.
func (r *MakerRepository) Register(ctx context.Context, in domain.MakerInput, code string) (*domain.Maker, error) {
	hash, err := r.passwords.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	codes, err := r.codes.load(ctx)
	if err != nil {
		return nil, err
	}
	ci := findCode(codes, code)
	if ci < 0 || codes[ci].IsUsed {
		return nil, ErrAuthCodeInvalid
	}
	makers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if findUsername(makers, in.Username) >= 0 {
		return nil, ErrUsernameTaken
	}

	now := r.now()
	maker := domain.Maker{
		ID:           r.newID(prefixMaker),
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		Company:      in.Company,
		Contact:      in.Contact,
		ProjectInfo:  in.ProjectInfo,
		IsAuthorized: true,
		AuthCode:     code,
		JoinDate:     now,
		Projects:     []string{},
		Teams:        []string{},
	}
	maker.Points = consume(&codes[ci], maker.ID, now)
	makers = append(makers, maker)

	if err := r.saveAll(ctx, r.write(makers), r.codes.write(codes)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpCreated, maker.ID)
	r.notify(r.codes.key, events.OpUpdated, codes[ci].ID)
	return &maker, nil
}

// Authenticate returns the maker whose username and password match, or
// ErrInvalidCredentials
func (r *MakerRepository) Authenticate(ctx context.Context, username, password string) (*domain.Maker, error) {
	maker, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if maker == nil {
		r.passwords.matches(r.passwords.dummy(), password)
		return nil, ErrInvalidCredentials
	}
	if !r.passwords.matches(maker.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return maker, nil
}

// UpdatePassword replaces the password of a maker. It reports false if
// there is no such maker.
func (r *MakerRepository) UpdatePassword(ctx context.Context, id, password string) (bool, error) {
	hash, err := r.passwords.hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	m, err := r.modify(ctx, id, func(m *domain.Maker) { m.PasswordHash = hash })
	return m != nil, err
}

// ResetPassword sets a maker's password to the configured reset password
func (r *MakerRepository) ResetPassword(ctx context.Context, id string) (bool, error) {
	return r.UpdatePassword(ctx, id, r.passwords.reset)
}

// Update applies patch to a maker's profile. It returns nil if there is no
// such maker.
func (r *MakerRepository) Update(ctx context.Context, id string, patch domain.MakerPatch) (*domain.Maker, error) {
	return r.modify(ctx, id, patch.Apply)
}
