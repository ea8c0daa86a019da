package validator

import (
	"regexp"

	"finsmart/dto"
	"finsmart/errors"
)

// ValidateRegisterInput validate thông tin đăng ký
func ValidateRegisterInput(input *dto.RegisterInput) error {
	if input.Username == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên đăng nhập không được để trống", nil)
	}

	if input.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Mật khẩu không được để trống", nil)
	}

	if len(input.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 6 ký tự", nil)
	}

	if input.Password != input.ConfirmPassword {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu nhập lại không khớp", nil)
	}

	if input.Email != "" && !isValidEmail(input.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}

	if input.PhoneNumber != "" && !isValidPhone(input.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ", nil)
	}

	return nil
}

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func isValidPhone(phone string) bool {
	re := regexp.MustCompile(`^[0-9]{9,11}$`)
	return re.MatchString(phone)
}
