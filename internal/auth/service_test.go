package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
	"github.com/reformtrack/reform-management/internal/auth"
)

func TestAuthService(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockAuthRepository struct {
	hash       string
	userID     int64
	isActive   bool
	credsError error

	principal      *accesscontrol.Principal
	principalError error
}

func (m *mockAuthRepository) GetCredentials(email string) (string, int64, bool, error) {
	if m.credsError != nil {
		return "", 0, false, m.credsError
	}
	return m.hash, m.userID, m.isActive, nil
}

func (m *mockAuthRepository) GetPrincipal(userID int64) (*accesscontrol.Principal, error) {
	if m.principalError != nil {
		return nil, m.principalError
	}
	return m.principal, nil
}

var _ = ginkgo.Describe("Auth Service", func() {
	const password = "correct-horse-battery"

	var (
		repo    *mockAuthRepository
		service *auth.Service
	)

	newTokenGen := func() *auth.JWTTokenGenerator {
		return auth.NewJWTTokenGenerator(
			"access-secret-for-tests-0123456789ab",
			"refresh-secret-for-tests-0123456789a",
			15*time.Minute,
			24*time.Hour,
		)
	}

	ginkgo.BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		repo = &mockAuthRepository{
			hash:     string(hash),
			userID:   11,
			isActive: true,
			principal: &accesscontrol.Principal{
				ID:            11,
				Email:         "priya.member@reformtrack.gov.in",
				Role:          accesscontrol.RoleMember,
				SecurityLevel: accesscontrol.SecurityStandard,
				IsActive:      true,
			},
		}
		service = auth.NewService(repo, newTokenGen(), bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "priya.member@reformtrack.gov.in",
				Password: password,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).NotTo(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).NotTo(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(11)))
			gomega.Expect(claims.Email).To(gomega.Equal("priya.member@reformtrack.gov.in"))
		})

		ginkgo.It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "priya.member@reformtrack.gov.in",
				Password: "wrong",
			})
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidCredentials))
		})

		ginkgo.It("rejects an unknown email with the same error as a wrong password", func() {
			repo.credsError = errors.New("record not found")
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@reformtrack.gov.in",
				Password: password,
			})
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidCredentials))
		})

		ginkgo.It("rejects an inactive account only when the password is right", func() {
			repo.isActive = false

			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "priya.member@reformtrack.gov.in",
				Password: password,
			})
			gomega.Expect(err).To(gomega.Equal(auth.ErrUserInactive))

			_, err = service.Authenticate(auth.LoginDTO{
				Email:    "priya.member@reformtrack.gov.in",
				Password: "wrong",
			})
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidCredentials))
		})

		ginkgo.It("validates the dto before touching the repository", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "", Password: ""})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("issues a new pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "priya.member@reformtrack.gov.in",
				Password: password,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("rejects an access token presented as a refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "priya.member@reformtrack.gov.in",
				Password: password,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.RefreshTokens(tokens.AccessToken)
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidToken))
		})

		ginkgo.It("rejects a refresh for an account deactivated since login", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "priya.member@reformtrack.gov.in",
				Password: password,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			repo.principal.IsActive = false
			_, err = service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).To(gomega.Equal(auth.ErrUserInactive))
		})

		ginkgo.It("rejects garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidToken))
		})
	})

	ginkgo.Describe("token expiry", func() {
		ginkgo.It("rejects an expired access token", func() {
			expiredGen := &auth.JWTTokenGenerator{
				AccessTokenSecret:  []byte("access-secret-for-tests-0123456789ab"),
				RefreshTokenSecret: []byte("refresh-secret-for-tests-0123456789a"),
				AccessTokenTTL:     -1 * time.Minute,
				RefreshTokenTTL:    24 * time.Hour,
			}
			token, err := expiredGen.GenerateAccessToken(11, "x@reformtrack.gov.in")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = expiredGen.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.Equal(auth.ErrTokenExpired))
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("produces a hash that verifies", func() {
			hash, err := service.HashPassword("s3cret")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret"))).To(gomega.Succeed())
		})
	})
})
