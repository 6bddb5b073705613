package auth

import (
	"database/sql"
	"fmt"
	"os"
	"rosterhub/db"
	"rosterhub/types"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RequireTeacher rejects requests that do not carry a valid teacher token.
func RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errStatus, errDetail := parseBearer(c.GetHeader("Authorization"))
		if errDetail != "" {
			c.JSON(errStatus, gin.H{"detail": errDetail})
			c.Abort()
			return
		}

		if claims["role"] != "teacher" {
			c.JSON(403, gin.H{"detail": "Forbidden: teacher role required"})
			c.Abort()
			return
		}

		c.Set("username", claims["sub"])
		c.Next()
	}
}

// OptionalTeacher lets anonymous requests through untouched, but a token
// that is presented must still be a valid one.
func OptionalTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		claims, errStatus, errDetail := parseBearer(header)
		if errDetail != "" {
			c.JSON(errStatus, gin.H{"detail": errDetail})
			c.Abort()
			return
		}

		c.Set("username", claims["sub"])
		c.Next()
	}
}

func parseBearer(header string) (jwt.MapClaims, int, string) {
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, 401, "Missing or invalid authorization"
	}

	tokenString := header[len("Bearer "):]
	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, 401, "Invalid token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, 401, "Invalid token"
	}
	return claims, 0, ""
}

func GenerateTeacherJWT(username string, expirationTime time.Duration) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "teacher",
		"exp":  time.Now().Add(expirationTime).Unix(), // Token expiration
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// HandleLogin checks teacher credentials and hands back a 12 hour token.
func HandleLogin(c *gin.Context) {
	var json types.LoginRequest
	if err := c.BindJSON(&json); err != nil {
		c.JSON(400, gin.H{"detail": "Invalid request data"})
		return
	}

	var teacher types.TeacherData
	query := `SELECT id, uuid, username, password FROM teachers WHERE username = ?`
	err := db.RosterDB.QueryRow(query, json.Username).Scan(&teacher.ID, &teacher.UUID, &teacher.Username, &teacher.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(401, gin.H{"detail": "Invalid credentials"})
		} else {
			c.JSON(500, gin.H{"detail": "Error extracting data"})
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(json.Password))
	if err != nil {
		c.JSON(401, gin.H{"detail": "Invalid credentials"})
		return
	}

	token, err := GenerateTeacherJWT(teacher.Username, time.Hour*12)
	if err != nil {
		c.JSON(500, gin.H{"detail": "Failed to generate JWT token"})
		return
	}

	c.JSON(200, types.LoginResponse{
		Token:    token,
		Role:     "teacher",
		Username: teacher.Username,
	})
}
