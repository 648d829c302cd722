package serverutils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserId = "user_id"
	LocalRole   = "role"
)

// TokenClaims is what a verified bearer token carries.
type TokenClaims struct {
	UserId uuid.UUID
	Role   string
}

func GenerateToken(secret string, userId uuid.UUID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token missing user_id")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, errors.New("invalid user id in token")
	}

	role, _ := claims["role"].(string)
	return &TokenClaims{UserId: userId, Role: role}, nil
}

// JwtMiddleware verifies the bearer token and stores user_id and role in locals.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return Unauthorized("Missing or invalid authorization header")
		}

		claims, err := ParseToken(secret, authHeader[7:])
		if err != nil {
			return Unauthorized(err.Error())
		}

		ctx.Locals(LocalUserId, claims.UserId.String())
		ctx.Locals(LocalRole, claims.Role)
		return ctx.Next()
	}
}

// RequireRole must run after JwtMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(LocalRole).(string)
		if role == "" {
			return Forbidden("Access denied: Role missing")
		}
		for _, r := range roles {
			if r == role {
				return ctx.Next()
			}
		}
		return Forbidden("Access denied: insufficient role")
	}
}

// CurrentUser reads the identity JwtMiddleware attached to the request.
func CurrentUser(ctx *fiber.Ctx) (*TokenClaims, error) {
	userIdStr, ok := ctx.Locals(LocalUserId).(string)
	if !ok {
		return nil, Unauthorized("Unauthorized")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, Unauthorized("Invalid user ID")
	}
	role, _ := ctx.Locals(LocalRole).(string)
	return &TokenClaims{UserId: userId, Role: role}, nil
}

// ParamUUID parses a uuid route param, failing with a ValidationError.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, ValidationError("invalid %s", name)
	}
	return id, nil
}
