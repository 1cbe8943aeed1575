package in

import "context"

// RecordDonorResponseInput — входные данные для записи ответа донора
type RecordDonorResponseInput struct {
	RequestID string `json:"request_id"`
	DonorID   string `json:"donor_id"`
	Response  string `json:"response"` // ACCEPTED | REJECTED
}

// RecordDonorResponseOutput — результат записи ответа
type RecordDonorResponseOutput struct {
	RequestID string `json:"request_id"`
	DonorID   string `json:"donor_id"`
	Recorded  bool   `json:"recorded"`  // false — для пары нет записи PENDING
	Approved  bool   `json:"approved"`  // этот вызов перевел заявку в APPROVED
	Status    string `json:"status"`    // текущий статус заявки
}

// RecordDonorResponseUseCase — интерфейс use-case записи ответа донора
type RecordDonorResponseUseCase interface {
	Execute(ctx context.Context, input RecordDonorResponseInput) (*RecordDonorResponseOutput, error)
}
