package utils

import "golang.org/x/crypto/bcrypt"

// ErrPasswordTooLong bcrypt 只接受 72 字节以内的密码
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 校验明文密码与 hash 是否匹配
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
