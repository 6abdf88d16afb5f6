package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для заполнения опциональных полей литералами
func Ptr[T any](v T) *T {
	return &v
}
