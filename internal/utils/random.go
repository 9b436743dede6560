package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Ana", "Luis", "María", "Carlos", "Lucía", "Jorge", "Elena", "Miguel",
	"Sofía", "Pedro", "Carmen", "Diego", "Valeria", "Andrés", "Paula", "Raúl",
}
var commonSurnames = []string{
	"García", "Martínez", "López", "Sánchez", "Pérez", "Gómez", "Fernández",
	"Torres", "Ramírez", "Flores", "Rivera", "Morales", "Ortiz", "Castillo",
}

func GenerateRandomFullName() string {
	firstName := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return firstName + " " + surname
}

var digits = "0123456789"

// GenerateUsernameFromFullName arma un usuario a partir del nombre, sin
// acentos ni espacios, con un sufijo numérico para evitar colisiones.
func GenerateUsernameFromFullName(fullName string) string {
	username := strings.ToLower(fullName)
	username = strings.ReplaceAll(username, " ", ".")

	replacer := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")
	username = replacer.Replace(username)

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleExecutive,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
