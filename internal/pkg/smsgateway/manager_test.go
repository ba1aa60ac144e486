package smsgateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGateway struct {
	id    string
	err   error
	calls int
	phone string
	msg   string
	code  string
}

func (f *fakeGateway) ID() string                { return f.id }
func (f *fakeGateway) Name() string              { return f.id }
func (f *fakeGateway) Fields() []CredentialField { return nil }

func (f *fakeGateway) Send(_ context.Context, phone, message, code string) error {
	f.calls++
	f.phone, f.msg, f.code = phone, message, code
	return f.err
}

func TestManagerSendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("PrimarySucceeds", func(t *testing.T) {
		// Arrange
		primary := &fakeGateway{id: "a"}
		backup := &fakeGateway{id: "b"}
		m := NewManager(ManagerConfig{PrimaryID: "a", BackupID: "b"}, primary, backup)

		// Act
		err := m.SendOTP(ctx, "09123456789", "123456")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 0, backup.calls, "backup must not be attempted after a primary success")
		assert.Equal(t, "+989123456789", primary.phone)
		assert.Equal(t, "Your verification code is 123456", primary.msg)
	})

	t.Run("PrimaryFailsBackupSucceeds", func(t *testing.T) {
		// Arrange
		primary := &fakeGateway{id: "a", err: errors.New("provider down")}
		backup := &fakeGateway{id: "b"}
		m := NewManager(ManagerConfig{PrimaryID: "a", BackupID: "b"}, primary, backup)

		// Act
		err := m.SendOTP(ctx, "09123456789", "123456")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, backup.calls)
	})

	t.Run("BothFail", func(t *testing.T) {
		// Arrange
		backupErr := errors.New("backup down")
		primary := &fakeGateway{id: "a", err: errors.New("primary down")}
		backup := &fakeGateway{id: "b", err: backupErr}
		m := NewManager(ManagerConfig{PrimaryID: "a", BackupID: "b"}, primary, backup)

		// Act
		err := m.SendOTP(ctx, "09123456789", "123456")

		// Assert
		assert.ErrorIs(t, err, backupErr)
	})

	t.Run("NoBackupConfigured", func(t *testing.T) {
		// Arrange
		primaryErr := errors.New("primary down")
		primary := &fakeGateway{id: "a", err: primaryErr}
		m := NewManager(ManagerConfig{PrimaryID: "a"}, primary)

		// Act
		err := m.SendOTP(ctx, "09123456789", "123456")

		// Assert
		assert.ErrorIs(t, err, primaryErr)
	})

	t.Run("NoPrimaryConfigured", func(t *testing.T) {
		// Arrange
		gw := &fakeGateway{id: "a"}
		m := NewManager(ManagerConfig{}, gw)

		// Act
		err := m.SendOTP(ctx, "09123456789", "123456")

		// Assert
		assert.ErrorIs(t, err, ErrNoPrimaryGateway)
		assert.Equal(t, 0, gw.calls)
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		// Arrange
		primary := &fakeGateway{id: "a"}
		m := NewManager(ManagerConfig{PrimaryID: "a"}, primary)

		// Act
		err := m.SendOTP(ctx, "02123456789", "123456")

		// Assert
		assert.ErrorIs(t, err, ErrInvalidPhone)
		assert.Equal(t, 0, primary.calls)
	})

	t.Run("BackupSameAsPrimaryIgnored", func(t *testing.T) {
		// Arrange
		primary := &fakeGateway{id: "a", err: errors.New("primary down")}
		m := NewManager(ManagerConfig{PrimaryID: "a", BackupID: "a"}, primary)

		// Act
		err := m.SendOTP(ctx, "09123456789", "123456")

		// Assert
		assert.Error(t, err)
		assert.Equal(t, 1, primary.calls, "primary must not double as its own backup")
	})
}

func TestManagerRegistry(t *testing.T) {
	t.Run("AvailablePreservesOrder", func(t *testing.T) {
		m := NewManager(ManagerConfig{},
			&fakeGateway{id: "kavenegar"},
			&fakeGateway{id: "smsir"},
			&fakeGateway{id: "melipayamak"},
		)

		descs := m.Available()

		assert.Len(t, descs, 3)
		assert.Equal(t, "kavenegar", descs[0].ID)
		assert.Equal(t, "smsir", descs[1].ID)
		assert.Equal(t, "melipayamak", descs[2].ID)
	})

	t.Run("DuplicateIDSkipped", func(t *testing.T) {
		first := &fakeGateway{id: "a"}
		second := &fakeGateway{id: "a"}
		m := NewManager(ManagerConfig{PrimaryID: "a"}, first, second)

		gw, ok := m.Gateway("a")

		assert.True(t, ok)
		assert.Same(t, Gateway(first), gw)
		assert.Len(t, m.Available(), 1)
	})

	t.Run("UnknownPrimaryLeavesManagerInactive", func(t *testing.T) {
		m := NewManager(ManagerConfig{PrimaryID: "nope"}, &fakeGateway{id: "a"})

		_, ok := m.Active()

		assert.False(t, ok)
	})

	t.Run("ActiveIDs", func(t *testing.T) {
		m := NewManager(ManagerConfig{PrimaryID: "a", BackupID: "b"},
			&fakeGateway{id: "a"}, &fakeGateway{id: "b"})

		primary, backup := m.ActiveIDs()

		assert.Equal(t, "a", primary)
		assert.Equal(t, "b", backup)
	})
}

func TestManagerRenderMessage(t *testing.T) {
	t.Run("DefaultTemplate", func(t *testing.T) {
		m := NewManager(ManagerConfig{})

		assert.Equal(t, "Your verification code is 042187", m.RenderMessage("042187"))
	})

	t.Run("CustomTemplate", func(t *testing.T) {
		m := NewManager(ManagerConfig{MessageTemplate: "Code: {otp_code}. Valid for 5 minutes."})

		assert.Equal(t, "Code: 042187. Valid for 5 minutes.", m.RenderMessage("042187"))
	})

	t.Run("TemplateWithoutToken", func(t *testing.T) {
		m := NewManager(ManagerConfig{MessageTemplate: "Welcome back"})

		assert.Equal(t, "Welcome back", m.RenderMessage("042187"))
	})
}
