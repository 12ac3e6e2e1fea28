package customerdirectory

// Logger интерфейс логгера, используемый клиентом
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
