package firebase

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"

	"localmarket/pkg/errors"
)

// FirebaseAuthClient is the production identity provider: accounts live in
// Firebase Auth and callers present Firebase ID tokens.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if msg := rejection(err); msg != "" {
			return "", errors.BadRequest(msg, err)
		}
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// rejection names the signup errors a user can correct. The SDK validates
// email and password locally and returns plain errors for those, so they are
// matched on the message.
func rejection(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case auth.IsEmailAlreadyExists(err):
		return "email already exists"
	case auth.IsInvalidEmail(err), strings.Contains(msg, "malformed email"):
		return "email is invalid"
	case strings.Contains(msg, "password must be"):
		return "password must be at least 6 characters"
	}
	return ""
}
