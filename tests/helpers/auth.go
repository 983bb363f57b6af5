package helpers

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"testing"
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

// AcquireAccount performs signup and signin against a running fieldwise
// instance and returns the session cookie for authenticated requests.
func AcquireAccount(t *testing.T, baseURL, fullName, username, email, password string) *http.Cookie {
	t.Helper()

	signupBody, _ := json.Marshal(map[string]string{
		"fullName": fullName,
		"username": username,
		"email":    email,
		"password": password,
	})
	resp, err := http.Post(baseURL+"/api/auth/signup", "application/json", bytes.NewReader(signupBody))
	if err != nil {
		t.Fatalf("Signup request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// User might already exist from a prior run, try signin anyway
		t.Logf("Signup returned %d (might already exist)", resp.StatusCode)
	}

	signinBody, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err = http.Post(baseURL+"/api/auth/signin", "application/json", bytes.NewReader(signinBody))
	if err != nil {
		t.Fatalf("Signin request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Signin failed with status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "fieldwise_session" {
			return cookie
		}
	}

	t.Fatal("No fieldwise_session cookie in signin response")
	return nil
}
