package logger

import (
	"github.com/sirupsen/logrus"
)

// Log общий логгер приложения. До вызова Init пишет с настройками по умолчанию.
var Log = logrus.New()

// Init настраивает структурированный логгер. Экземпляр Log не пересоздаётся,
// поэтому ссылки на него, взятые до Init, остаются рабочими.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// WithComponent возвращает запись лога с полем component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
