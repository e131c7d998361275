package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	"google.golang.org/api/option"
)

const (
	userIDKey = "userID"
)

// FirebaseAuthClient defines the interface for Firebase Auth operations
// This allows mocking for tests
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// OptionalFirebaseAuth validates a Firebase ID token when one is sent and puts
// the user in the request context. Requests without an Authorization header
// continue anonymously; the store then works on the device cache only.
func OptionalFirebaseAuth(authClient FirebaseAuthClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		// Extract Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid authorization header format, expected 'Bearer <token>'",
			})
		}

		// Verify the token
		decodedToken, err := authClient.VerifyIDToken(c.UserContext(), parts[1])
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"error":   "token expired",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid token",
			})
		}

		// Extract UID and attach to context
		userID := decodedToken.UID
		c.Locals(userIDKey, userID)
		c.SetUserContext(domain.WithUserID(c.UserContext(), userID))
		telemetry.SetSpanAttribute(c, "enduser.id", userID)

		return c.Next()
	}
}

// InitFirebase initializes Firebase Admin SDK with environment variables
func InitFirebase(projectID, privateKeyB64, clientEmail string) (*firebase.App, error) {
	// Decode base64 private key
	privateKey, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, err
	}

	// Create credentials JSON
	credentialsJSON := map[string]interface{}{
		"type":         "service_account",
		"project_id":   projectID,
		"private_key":  string(privateKey),
		"client_email": clientEmail,
	}

	// Initialize Firebase app
	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsJSON(mustMarshalJSON(credentialsJSON)))
	if err != nil {
		return nil, err
	}

	return app, nil
}

// GetUserID extracts the user ID from Fiber context, empty for anonymous requests
func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals(userIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// mustMarshalJSON is a helper to marshal JSON or panic
func mustMarshalJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
