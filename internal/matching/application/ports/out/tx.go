package out

import "context"

// TxManager — граница транзакции. Функция fn выполняется в транзакции,
// которая передается репозиториям через контекст; ошибка fn откатывает
// все изменения как единое целое.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
