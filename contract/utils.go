package contract

// validateLength fails with tooLong when text is longer than max bytes.
func validateLength(text string, max int, tooLong error) error {
	if len(text) > max {
		return tooLong
	}
	return nil
}

// validateNickname accepts a missing nickname.
func validateNickname(nickname *string) error {
	if nickname == nil {
		return nil
	}
	return validateLength(*nickname, MaxNicknameLen, ErrNicknameTooLong)
}

func validateDescription(description *string) error {
	if description == nil {
		return nil
	}
	return validateLength(*description, MaxDescriptionLen, ErrDescriptionTooLong)
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
