package i18nx

var catalogEN = map[string]string{
	"not_auth":         "The user is not authorized.",
	"not_found":        "not found",
	"unexpected_error": "An unexpected error occurred. Please try again later.",

	"register.email_taken": "A user with the email address \"{{email}}\" already exists.",

	"activate.invalid_link":         "The activation link is invalid.",
	"activation_link.unknown_user":  "Could not find a user with the ID \"{{id}}\".",
	"google.default_first_name":     "User",
	"login.unknown_email":           "Could not find a user with the email address \"{{email}}\".",
	"login.invalid_password":        "The password is incorrect.",
	"forgot_password.unknown_email": "Could not find a user with the email address \"{{email}}\".",

	"reset.invalid_link": "The password reset link is invalid.",
	"reset.expired_link": "The password reset link has expired.",

	"change_password.unknown_user":         "Could not find a user with the ID \"{{id}}\".",
	"change_password.invalid_old_password": "The old password is incorrect.",
	"change_lang.unknown_user":             "Could not find a user with the ID \"{{id}}\".",

	"delete_user.unknown_email":    "While deleting the user, we couldn't find a user with the email address \"{{email}}\".",
	"delete_user.invalid_data":     "While deleting the user, we found that the provided data is incorrect.",
	"delete_user.invalid_password": "While deleting the user, we found that the provided password is incorrect.",
	"delete_user.failed":           "Failed to delete the user with the ID \"{{id}}\".",

	"get_user.unknown_user": "Could not find a user with the ID \"{{id}}\".",

	"mail.activation.subject": "Activate your account",
	"mail.activation.body":    "Hi {{name}}! Follow the link to activate your account: {{url}}",
	"mail.reset.subject":      "Reset your password",
	"mail.reset.body":         "Hi {{name}}! Follow the link to set a new password: {{url}}",
}

var catalogUA = map[string]string{
	"not_auth":         "Користувач не авторизований.",
	"not_found":        "не знайдено",
	"unexpected_error": "Сталася непередбачена помилка. Спробуйте пізніше.",

	"register.email_taken": "Користувач з email \"{{email}}\" вже існує.",

	"activate.invalid_link":         "Посилання активації недійсне.",
	"activation_link.unknown_user":  "Не вдалося знайти користувача з ID \"{{id}}\".",
	"google.default_first_name":     "Користувач",
	"login.unknown_email":           "Не вдалося знайти користувача з email \"{{email}}\".",
	"login.invalid_password":        "Невірний пароль.",
	"forgot_password.unknown_email": "Не вдалося знайти користувача з email \"{{email}}\".",

	"reset.invalid_link": "Посилання для зміни пароля недійсне.",
	"reset.expired_link": "Термін дії посилання для зміни пароля минув.",

	"change_password.unknown_user":         "Не вдалося знайти користувача з ID \"{{id}}\".",
	"change_password.invalid_old_password": "Старий пароль невірний.",
	"change_lang.unknown_user":             "Не вдалося знайти користувача з ID \"{{id}}\".",

	"delete_user.unknown_email":    "Під час видалення не вдалося знайти користувача з email \"{{email}}\".",
	"delete_user.invalid_data":     "Під час видалення виявлено, що надані дані некоректні.",
	"delete_user.invalid_password": "Під час видалення виявлено, що наданий пароль невірний.",
	"delete_user.failed":           "Не вдалося видалити користувача з ID \"{{id}}\".",

	"get_user.unknown_user": "Не вдалося знайти користувача з ID \"{{id}}\".",

	"mail.activation.subject": "Активуйте свій акаунт",
	"mail.activation.body":    "Привіт, {{name}}! Перейдіть за посиланням, щоб активувати акаунт: {{url}}",
	"mail.reset.subject":      "Зміна пароля",
	"mail.reset.body":         "Привіт, {{name}}! Перейдіть за посиланням, щоб встановити новий пароль: {{url}}",
}

var catalogRU = map[string]string{
	"not_auth":         "Пользователь не авторизован.",
	"not_found":        "не найдено",
	"unexpected_error": "Произошла непредвиденная ошибка. Попробуйте позже.",

	"register.email_taken": "Пользователь с email \"{{email}}\" уже существует.",

	"activate.invalid_link":         "Ссылка активации недействительна.",
	"activation_link.unknown_user":  "Не удалось найти пользователя с ID \"{{id}}\".",
	"google.default_first_name":     "Пользователь",
	"login.unknown_email":           "Не удалось найти пользователя с email \"{{email}}\".",
	"login.invalid_password":        "Неверный пароль.",
	"forgot_password.unknown_email": "Не удалось найти пользователя с email \"{{email}}\".",

	"reset.invalid_link": "Ссылка для смены пароля недействительна.",
	"reset.expired_link": "Срок действия ссылки для смены пароля истёк.",

	"change_password.unknown_user":         "Не удалось найти пользователя с ID \"{{id}}\".",
	"change_password.invalid_old_password": "Старый пароль неверен.",
	"change_lang.unknown_user":             "Не удалось найти пользователя с ID \"{{id}}\".",

	"delete_user.unknown_email":    "При удалении не удалось найти пользователя с email \"{{email}}\".",
	"delete_user.invalid_data":     "При удалении обнаружено, что предоставленные данные некорректны.",
	"delete_user.invalid_password": "При удалении обнаружено, что предоставленный пароль неверен.",
	"delete_user.failed":           "Не удалось удалить пользователя с ID \"{{id}}\".",

	"get_user.unknown_user": "Не удалось найти пользователя с ID \"{{id}}\".",

	"mail.activation.subject": "Активируйте свой аккаунт",
	"mail.activation.body":    "Привет, {{name}}! Перейдите по ссылке, чтобы активировать аккаунт: {{url}}",
	"mail.reset.subject":      "Смена пароля",
	"mail.reset.body":         "Привет, {{name}}! Перейдите по ссылке, чтобы установить новый пароль: {{url}}",
}
