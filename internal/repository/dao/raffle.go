package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRaffleNotFound      = errors.New("raffle not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("user already joined this raffle")
	ErrPrizeNotFound       = errors.New("prize not found")
	ErrPrizeExhausted      = errors.New("prize has no draws left")
)

type Raffle struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	Name     string `gorm:"not null"`
	Status   string `gorm:"not null;default:draft"`
	JoinCode string `gorm:"index"`

	Participants []Participant `gorm:"foreignKey:RaffleID"`
	Prizes       []Prize       `gorm:"foreignKey:RaffleID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Participant struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	RaffleID    string `gorm:"type:uuid;not null;uniqueIndex:idx_participants_raffle_user"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_participants_raffle_user"`
	TicketCount int    `gorm:"not null;check:ticket_count > 0"`
	JoinedAt    time.Time
}

type Prize struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	RaffleID   string `gorm:"type:uuid;not null;index"`
	Name       string `gorm:"not null"`
	Quantity   int    `gorm:"not null;check:quantity > 0"`
	DrawnCount int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Winner struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	RaffleID      string `gorm:"type:uuid;not null;index"`
	PrizeID       string `gorm:"type:uuid;not null;index"`
	ParticipantID string `gorm:"type:uuid;not null"`
	UserID        uint   `gorm:"not null;index"`
	Seed          int64  `gorm:"not null"`
	DrawnAt       time.Time
}

// ParticipantRow carries a participant joined with the owning user's name.
type ParticipantRow struct {
	Participant
	DisplayName string
}

// WinnerRow carries a winner joined with display and prize names.
type WinnerRow struct {
	Winner
	DisplayName string
	PrizeName   string
}

type MultiWinnerRow struct {
	UserID   uint
	Name     string
	WinCount int
}

type RaffleDAO struct {
	db *gorm.DB
}

func NewRaffleDAO(db *gorm.DB) *RaffleDAO {
	return &RaffleDAO{
		db: db,
	}
}

func (d *RaffleDAO) InsertRaffle(ctx context.Context, raffle Raffle) (Raffle, error) {
	if raffle.ID == "" {
		raffle.ID = uuid.NewString()
	}

	result := d.db.WithContext(ctx).Create(&raffle)
	if result.Error != nil {
		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) FindAllRaffles(ctx context.Context) ([]Raffle, error) {
	var raffles []Raffle

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&raffles)
	if result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

func (d *RaffleDAO) FindRaffleByID(ctx context.Context, id string) (Raffle, error) {
	var raffle Raffle

	result := d.db.WithContext(ctx).First(&raffle, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Raffle{}, ErrRaffleNotFound
		}

		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) FindRaffleByJoinCode(ctx context.Context, joinCode string) (Raffle, error) {
	var raffle Raffle

	result := d.db.WithContext(ctx).First(&raffle, "join_code = ?", joinCode)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Raffle{}, ErrRaffleNotFound
		}

		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) UpdateRaffleName(ctx context.Context, id, name string) (Raffle, error) {
	result := d.db.WithContext(ctx).Model(&Raffle{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return Raffle{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Raffle{}, ErrRaffleNotFound
	}

	return d.FindRaffleByID(ctx, id)
}

func (d *RaffleDAO) UpdateRaffleStatus(ctx context.Context, id, status, joinCode string) (Raffle, error) {
	updates := map[string]any{"status": status}
	if joinCode != "" {
		updates["join_code"] = joinCode
	}

	result := d.db.WithContext(ctx).Model(&Raffle{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return Raffle{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Raffle{}, ErrRaffleNotFound
	}

	return d.FindRaffleByID(ctx, id)
}

func (d *RaffleDAO) DeleteRaffle(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("raffle_id = ?", id).Delete(&Prize{}).Error; err != nil {
			return err
		}
		if err := tx.Where("raffle_id = ?", id).Delete(&Participant{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Raffle{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRaffleNotFound
		}

		return nil
	})
}

func (d *RaffleDAO) InsertParticipant(ctx context.Context, participant Participant) (Participant, error) {
	if participant.ID == "" {
		participant.ID = uuid.NewString()
	}

	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Participant{}, ErrParticipantExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *RaffleDAO) FindParticipantsByRaffleID(ctx context.Context, raffleID string) ([]ParticipantRow, error) {
	var rows []ParticipantRow

	result := d.db.WithContext(ctx).
		Table("participants").
		Select("participants.*, users.name AS display_name").
		Joins("JOIN users ON users.id = participants.user_id").
		Where("participants.raffle_id = ?", raffleID).
		Order("participants.joined_at ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *RaffleDAO) FindParticipantByID(ctx context.Context, id string) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *RaffleDAO) UpdateParticipantTickets(ctx context.Context, id string, ticketCount int) (Participant, error) {
	result := d.db.WithContext(ctx).Model(&Participant{}).Where("id = ?", id).Update("ticket_count", ticketCount)
	if result.Error != nil {
		return Participant{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Participant{}, ErrParticipantNotFound
	}

	return d.FindParticipantByID(ctx, id)
}

func (d *RaffleDAO) DeleteParticipant(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Participant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

func (d *RaffleDAO) CountWinsByParticipantID(ctx context.Context, participantID string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Winner{}).Where("participant_id = ?", participantID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *RaffleDAO) InsertPrize(ctx context.Context, prize Prize) (Prize, error) {
	if prize.ID == "" {
		prize.ID = uuid.NewString()
	}

	result := d.db.WithContext(ctx).Create(&prize)
	if result.Error != nil {
		return Prize{}, result.Error
	}

	return prize, nil
}

func (d *RaffleDAO) FindPrizesByRaffleID(ctx context.Context, raffleID string) ([]Prize, error) {
	var prizes []Prize

	result := d.db.WithContext(ctx).Where("raffle_id = ?", raffleID).Order("created_at ASC").Find(&prizes)
	if result.Error != nil {
		return nil, result.Error
	}

	return prizes, nil
}

func (d *RaffleDAO) FindPrizeByID(ctx context.Context, id string) (Prize, error) {
	var prize Prize

	result := d.db.WithContext(ctx).First(&prize, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prize{}, ErrPrizeNotFound
		}

		return Prize{}, result.Error
	}

	return prize, nil
}

func (d *RaffleDAO) UpdatePrize(ctx context.Context, prize Prize) (Prize, error) {
	result := d.db.WithContext(ctx).Model(&Prize{}).Where("id = ?", prize.ID).
		Updates(map[string]any{"name": prize.Name, "quantity": prize.Quantity})
	if result.Error != nil {
		return Prize{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Prize{}, ErrPrizeNotFound
	}

	return d.FindPrizeByID(ctx, prize.ID)
}

func (d *RaffleDAO) DeletePrize(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Prize{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPrizeNotFound
	}

	return nil
}

// RecordWinner persists the winner and consumes one draw of the prize in
// a single transaction. The drawn_count guard keeps concurrent draws from
// over-drawing a prize.
func (d *RaffleDAO) RecordWinner(ctx context.Context, winner Winner) (Winner, error) {
	if winner.ID == "" {
		winner.ID = uuid.NewString()
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Prize{}).
			Where("id = ? AND drawn_count < quantity", winner.PrizeID).
			Update("drawn_count", gorm.Expr("drawn_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPrizeExhausted
		}

		return tx.Create(&winner).Error
	})
	if err != nil {
		return Winner{}, err
	}

	return winner, nil
}

func (d *RaffleDAO) FindWinnersByRaffleID(ctx context.Context, raffleID string) ([]WinnerRow, error) {
	var rows []WinnerRow

	result := d.db.WithContext(ctx).
		Table("winners").
		Select("winners.*, users.name AS display_name, prizes.name AS prize_name").
		Joins("JOIN users ON users.id = winners.user_id").
		Joins("JOIN prizes ON prizes.id = winners.prize_id").
		Where("winners.raffle_id = ?", raffleID).
		Order("winners.drawn_at ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *RaffleDAO) CountRaffleStats(ctx context.Context, raffleID string) (participants, tickets, prizes, winners int64, err error) {
	db := d.db.WithContext(ctx)

	if err = db.Model(&Participant{}).Where("raffle_id = ?", raffleID).Count(&participants).Error; err != nil {
		return 0, 0, 0, 0, err
	}

	var total struct{ Total int64 }
	if err = db.Model(&Participant{}).Select("COALESCE(SUM(ticket_count), 0) AS total").
		Where("raffle_id = ?", raffleID).Scan(&total).Error; err != nil {
		return 0, 0, 0, 0, err
	}
	tickets = total.Total

	if err = db.Model(&Prize{}).Where("raffle_id = ?", raffleID).Count(&prizes).Error; err != nil {
		return 0, 0, 0, 0, err
	}

	if err = db.Model(&Winner{}).Where("raffle_id = ?", raffleID).Count(&winners).Error; err != nil {
		return 0, 0, 0, 0, err
	}

	return participants, tickets, prizes, winners, nil
}

func (d *RaffleDAO) FindMultiWinners(ctx context.Context) ([]MultiWinnerRow, error) {
	var rows []MultiWinnerRow

	result := d.db.WithContext(ctx).
		Table("winners").
		Select("winners.user_id, users.name, COUNT(winners.id) AS win_count").
		Joins("JOIN users ON users.id = winners.user_id").
		Group("winners.user_id, users.name").
		Having("COUNT(winners.id) > 1").
		Order("win_count DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
