package postgres

const schema = `
CREATE TABLE IF NOT EXISTS track
(
    seq       BIGSERIAL PRIMARY KEY,
    track_id  BIGINT           NOT NULL
        CONSTRAINT track_track_id_uindex UNIQUE,
    title     TEXT             NOT NULL,
    artist    TEXT             NOT NULL,
    duration  DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_play TIMESTAMP        NOT NULL
);`

const drop = `DROP TABLE IF EXISTS track;`
