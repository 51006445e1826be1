package models

// SagaStatus marks how far a saga leg has progressed. The ledger keys
// on (saga id, saga name, status), so each status is applied at most
// once per leg.
type SagaStatus string

const (
	SagaStatusStarted      SagaStatus = "STARTED"
	SagaStatusProcessing   SagaStatus = "PROCESSING"
	SagaStatusSucceeded    SagaStatus = "SUCCEEDED"
	SagaStatusFailed       SagaStatus = "FAILED"
	SagaStatusCompensating SagaStatus = "COMPENSATING"
	SagaStatusCompensated  SagaStatus = "COMPENSATED"
)

// Saga leg names. The payment and approval coordinators share the
// per-order saga id, so the name keeps their ledger entries apart.
const (
	PaymentSagaName  = "payment"
	ApprovalSagaName = "approval"
)
