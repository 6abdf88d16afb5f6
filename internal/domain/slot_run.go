package domain

import (
	"fmt"
	"time"
)

// RunResolution результат проверки непрерывного покрытия окна слотами
// Available=true означает, что SlotIDs (в порядке возрастания start_time)
// полностью и без разрывов покрывают запрошенное окно
//
// Результат является подсказкой: между проверкой и бронированием слоты могут
// быть заняты конкурентным запросом. Гарантию даёт только условное
// обновление статусов при создании бронирования
type RunResolution struct {
	Available bool
	SlotIDs   []int64
	Slots     []*Slot
	Reason    string // диагностика для Available=false: первый разрыв или нехватка слотов
}

// ResolveSlotRun ищет непрерывную цепочку слотов, покрывающую окно
// [windowStart, windowEnd) и содержащую не менее requiredCount слотов.
//
// На вход ожидаются ТОЛЬКО доступные слоты одного хоста, отсортированные
// по start_time по возрастанию (именно так их отдаёт репозиторий).
//
// Правила обхода:
//   - первый слот цепочки должен покрывать начало окна
//     (slot.StartTime <= windowStart < slot.EndTime)
//   - каждый следующий слот должен начинаться ровно там, где закончился
//     предыдущий (ни разрывов, ни пересечений)
//   - цепочка растёт, пока не покроет windowEnd И не наберёт requiredCount
func ResolveSlotRun(slots []*Slot, windowStart, windowEnd time.Time, requiredCount int) RunResolution {
	if requiredCount <= 0 || !windowEnd.After(windowStart) {
		return RunResolution{Reason: "invalid window"}
	}

	// Находим слот, покрывающий начало окна
	startIdx := -1
	for i, slot := range slots {
		if !slot.EndTime.After(windowStart) {
			// Слот целиком до начала окна
			continue
		}
		if slot.StartTime.After(windowStart) {
			// Первый слот в окне начинается позже начала окна - покрытия нет
			break
		}
		startIdx = i
		break
	}

	if startIdx == -1 {
		return RunResolution{
			Reason: fmt.Sprintf("no available slot covers window start %s", windowStart.Format(time.RFC3339)),
		}
	}

	run := []*Slot{slots[startIdx]}
	coveredTo := slots[startIdx].EndTime

	for i := startIdx + 1; i < len(slots); i++ {
		if !coveredTo.Before(windowEnd) && len(run) >= requiredCount {
			break
		}

		next := slots[i]

		// Строгая непрерывность: следующий слот начинается ровно в конце покрытия
		if !next.StartTime.Equal(coveredTo) {
			if next.StartTime.After(coveredTo) {
				return RunResolution{
					Reason: fmt.Sprintf("gap between %s and %s",
						coveredTo.Format(time.RFC3339), next.StartTime.Format(time.RFC3339)),
				}
			}
			// Пересечение слотов - нарушение инварианта хранилища
			return RunResolution{
				Reason: fmt.Sprintf("overlapping slots at %s", next.StartTime.Format(time.RFC3339)),
			}
		}

		run = append(run, next)
		coveredTo = next.EndTime
	}

	if coveredTo.Before(windowEnd) {
		return RunResolution{
			Reason: fmt.Sprintf("insufficient coverage: slots end at %s, window ends at %s",
				coveredTo.Format(time.RFC3339), windowEnd.Format(time.RFC3339)),
		}
	}

	if len(run) < requiredCount {
		return RunResolution{
			Reason: fmt.Sprintf("insufficient slots: have %d contiguous, need %d", len(run), requiredCount),
		}
	}

	ids := make([]int64, len(run))
	for i, slot := range run {
		ids[i] = slot.ID
	}

	return RunResolution{
		Available: true,
		SlotIDs:   ids,
		Slots:     run,
	}
}

// VerifyContiguous проверяет, что слоты (отсортированные по start_time)
// образуют непрерывную цепочку. Используется для самопроверки после чтения
// слотов бронирования
func VerifyContiguous(slots []*Slot) bool {
	for i := 1; i < len(slots); i++ {
		if !slots[i].StartTime.Equal(slots[i-1].EndTime) {
			return false
		}
	}
	return true
}
