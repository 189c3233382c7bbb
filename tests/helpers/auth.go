package helpers

import (
	"context"
	"crypto/rand"
	"math/big"
	"testing"
	"time"

	authorizer "github.com/localnerve/authorizer-go"
	"github.com/localnerve/guau-api/internal/models"
	"github.com/localnerve/guau-api/internal/services"
	"gorm.io/gorm"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// LocalAccount signs up a local user, promotes it to role and returns the user
// with a session token.
func LocalAccount(t *testing.T, db *gorm.DB, secret, email, role string) (*models.User, string) {
	t.Helper()
	ctx := context.Background()

	user, err := services.Signup(ctx, db, services.SignupInput{
		Email:    email,
		Password: GeneratePassword(),
		Name:     email,
	})
	if err != nil {
		t.Fatalf("Signup failed for %s: %v", email, err)
	}
	if role != "" && role != user.Role {
		if user, err = services.SetUserRole(ctx, db, user.ID, role); err != nil {
			t.Fatalf("Failed to set role %s: %v", role, err)
		}
	}

	token, _, err := services.IssueToken(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return user, token
}

// AcquireAccount performs signup and login against Authorizer to get an access token
func AcquireAccount(t *testing.T, authzURL, clientID, email, password string, roles []string) string {
	client, err := authorizer.NewAuthorizerClient(clientID, authzURL, "", nil)
	if err != nil {
		t.Fatalf("Failed to create authorizer client: %v", err)
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	signupReq := &authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		Roles:           rolesPtrs,
	}

	_, err = client.SignUp(signupReq)
	if err != nil {
		// existing accounts fall through to login
		t.Logf("Signup failed (might already exist): %v", err)
	}

	loginReq := &authorizer.LoginInput{
		Email:    &email,
		Password: password,
	}

	res, err := client.Login(loginReq)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if res.AccessToken == nil {
		t.Fatal("Access token is nil")
	}

	return *res.AccessToken
}
