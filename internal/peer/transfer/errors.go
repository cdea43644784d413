package transfer

import (
	"errors"

	"github.com/iudanet/foldersync/internal/peer/validator"
)

var (
	// ErrChannelClosed канал закрыт (любой из сторон)
	ErrChannelClosed = errors.New("channel closed")
	// ErrProtocol неожиданное сообщение или некорректный манифест
	ErrProtocol = errors.New("protocol violation")
	// ErrIntegrity блок не совпал с дайджестом: при приеме или при итоговой проверке
	ErrIntegrity = validator.ErrIntegrity
	// ErrPrematureDisconnect соединение закрыто до завершения передачи
	ErrPrematureDisconnect = errors.New("connection closed before transfer completed")
	// ErrApprovalTimeout отправитель не дождался решения оператора
	ErrApprovalTimeout = errors.New("approval timed out")
	// ErrAcknowledgeTimeout получатель не дождался ответа отправителя
	ErrAcknowledgeTimeout = errors.New("no response from sender")
	// ErrRejected отправитель отклонил подключение
	ErrRejected = errors.New("connection rejected")
	// ErrCancelled передача отменена локально
	ErrCancelled = errors.New("transfer cancelled")
	// ErrCancelledByPeer передача отменена другой стороной
	ErrCancelledByPeer = errors.New("transfer cancelled by peer")
	// ErrSenderFailure отправитель сообщил об ошибке
	ErrSenderFailure = errors.New("sender error")
)
