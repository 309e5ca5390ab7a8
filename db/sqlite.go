package db

import (
	"database/sql"
	"errors"
	"time"

	"diapredict/ml"
	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB initializes the SQLite prediction history database
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        age REAL NOT NULL,
        sex REAL NOT NULL,
        bmi REAL NOT NULL,
        bp REAL NOT NULL,
        s1 REAL NOT NULL,
        s2 REAL NOT NULL,
        s3 REAL NOT NULL,
        s4 REAL NOT NULL,
        s5 REAL NOT NULL,
        s6 REAL NOT NULL,
        prediction REAL NOT NULL,
        created_at DATETIME NOT NULL
    );
    `

	_, err = database.Exec(query)
	return err
}

// Ready reports whether InitDB has been called successfully.
func Ready() bool {
	return database != nil
}

// Close closes the database handle.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// PredictionRecord is one served prediction with its raw inputs.
type PredictionRecord struct {
	ID         int64            `json:"id"`
	Inputs     ml.FeatureVector `json:"inputs"`
	Prediction float64          `json:"prediction"`
	CreatedAt  time.Time        `json:"created_at"`
}

// SavePrediction stores a served prediction and returns its row id.
func SavePrediction(inputs ml.FeatureVector, prediction float64, at time.Time) (int64, error) {
	if database == nil {
		return 0, errors.New("database not initialized")
	}
	result, err := database.Exec(`
        INSERT INTO predictions (age, sex, bmi, bp, s1, s2, s3, s4, s5, s6, prediction, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inputs[0], inputs[1], inputs[2], inputs[3], inputs[4],
		inputs[5], inputs[6], inputs[7], inputs[8], inputs[9],
		prediction, at.UTC())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// QueryPredictions returns the most recent predictions, newest first.
func QueryPredictions(limit int) ([]PredictionRecord, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	rows, err := database.Query(`
        SELECT id, age, sex, bmi, bp, s1, s2, s3, s4, s5, s6, prediction, created_at
        FROM predictions
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]PredictionRecord, 0)
	for rows.Next() {
		var r PredictionRecord
		err := rows.Scan(&r.ID,
			&r.Inputs[0], &r.Inputs[1], &r.Inputs[2], &r.Inputs[3], &r.Inputs[4],
			&r.Inputs[5], &r.Inputs[6], &r.Inputs[7], &r.Inputs[8], &r.Inputs[9],
			&r.Prediction, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
