package expire_absences

// Response результат прохода по просроченным заявкам
type Response struct {
	ExpiredIDs []int64 // ID заявок, переведённых в expired
	Failed     int     // Количество заявок, которые не удалось перевести
}
