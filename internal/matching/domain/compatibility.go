package domain

// DonationType — вид донации, для которого подбираются доноры.
// Заявки на аппараты ИВЛ до подбора доноров не доходят.
type DonationType string

const (
	DonationBlood  DonationType = "BLOOD"
	DonationPlasma DonationType = "PLASMA"
)

// Таблицы совместимости.
//
// Для цельной крови направление "донор → реципиент": O- универсальный донор,
// AB+ универсальный реципиент. Для плазмы направление обратное: AB —
// универсальный донор плазмы, реципиенты группы O могут принимать от всех.
//
// Таблицы воспроизводят трансфузиологические правила и являются медицинским
// ограничением — менять их нельзя.

var bloodCompatibility = map[BloodGroup][]BloodGroup{
	ONegative:  {ONegative},
	OPositive:  {ONegative, OPositive},
	ANegative:  {ANegative, ONegative},
	APositive:  {APositive, ANegative, OPositive, ONegative},
	BNegative:  {BNegative, ONegative},
	BPositive:  {BPositive, BNegative, OPositive, ONegative},
	ABNegative: {ABNegative, ANegative, BNegative, ONegative},
	ABPositive: {APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative},
}

var plasmaCompatibility = map[BloodGroup][]BloodGroup{
	ABPositive: {ABPositive, ABNegative},
	ABNegative: {ABPositive, ABNegative},
	APositive:  {APositive, ANegative, ABPositive, ABNegative},
	ANegative:  {APositive, ANegative, ABPositive, ABNegative},
	BPositive:  {BPositive, BNegative, ABPositive, ABNegative},
	BNegative:  {BPositive, BNegative, ABPositive, ABNegative},
	OPositive:  {APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative},
	ONegative:  {APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative},
}

// CompatibleDonorGroups возвращает группы доноров, совместимые с запрошенной
// группой для данного вида донации. Запрошенная группа включается всегда,
// даже если таблица её не содержит.
func CompatibleDonorGroups(requested BloodGroup, donationType DonationType) []BloodGroup {
	var table map[BloodGroup][]BloodGroup
	if donationType == DonationBlood {
		table = bloodCompatibility
	} else {
		table = plasmaCompatibility
	}

	groups := make([]BloodGroup, 0, 8)
	groups = append(groups, table[requested]...)

	for _, g := range groups {
		if g == requested {
			return groups
		}
	}
	// Защитное включение запрошенной группы
	return append(groups, requested)
}
