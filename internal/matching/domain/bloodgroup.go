package domain

import "fmt"

// BloodGroup — каноническое внутреннее представление группы крови.
// В БД и событиях хранится только каноническое имя (A_POSITIVE и т.д.);
// отображаемый символ (A+) существует исключительно на границе
// сериализации — Symbol/BloodGroupFromSymbol.
type BloodGroup string

const (
	APositive  BloodGroup = "A_POSITIVE"
	ANegative  BloodGroup = "A_NEGATIVE"
	BPositive  BloodGroup = "B_POSITIVE"
	BNegative  BloodGroup = "B_NEGATIVE"
	ABPositive BloodGroup = "AB_POSITIVE"
	ABNegative BloodGroup = "AB_NEGATIVE"
	OPositive  BloodGroup = "O_POSITIVE"
	ONegative  BloodGroup = "O_NEGATIVE"
)

// AllBloodGroups возвращает все восемь групп в стабильном порядке
func AllBloodGroups() []BloodGroup {
	return []BloodGroup{
		APositive, ANegative,
		BPositive, BNegative,
		ABPositive, ABNegative,
		OPositive, ONegative,
	}
}

var symbolByGroup = map[BloodGroup]string{
	APositive:  "A+",
	ANegative:  "A-",
	BPositive:  "B+",
	BNegative:  "B-",
	ABPositive: "AB+",
	ABNegative: "AB-",
	OPositive:  "O+",
	ONegative:  "O-",
}

var groupBySymbol = map[string]BloodGroup{
	"A+":  APositive,
	"A-":  ANegative,
	"B+":  BPositive,
	"B-":  BNegative,
	"AB+": ABPositive,
	"AB-": ABNegative,
	"O+":  OPositive,
	"O-":  ONegative,
}

// Valid проверяет, что значение — одна из восьми групп
func (g BloodGroup) Valid() bool {
	_, ok := symbolByGroup[g]
	return ok
}

// Symbol возвращает отображаемый символ (A+, O- и т.д.)
func (g BloodGroup) Symbol() string {
	if s, ok := symbolByGroup[g]; ok {
		return s
	}
	return string(g)
}

// BloodGroupFromSymbol парсит отображаемый символ в каноническую группу
func BloodGroupFromSymbol(s string) (BloodGroup, error) {
	if g, ok := groupBySymbol[s]; ok {
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBloodGroup, s)
}

// ParseBloodGroup парсит каноническое имя группы (A_POSITIVE и т.д.)
func ParseBloodGroup(s string) (BloodGroup, error) {
	g := BloodGroup(s)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBloodGroup, s)
	}
	return g, nil
}
