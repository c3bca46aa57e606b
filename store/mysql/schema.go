package mysql

const schema = `
CREATE TABLE IF NOT EXISTS track
(
    seq       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    track_id  BIGINT       NOT NULL,
    title     VARCHAR(255) NOT NULL,
    artist    VARCHAR(255) NOT NULL,
    duration  DOUBLE       NOT NULL DEFAULT 0,
    last_play DATETIME     NOT NULL,
    CONSTRAINT track_track_id_uindex UNIQUE (track_id)
) ENGINE = InnoDB
  DEFAULT CHARSET = utf8mb4;`

const drop = `DROP TABLE IF EXISTS track;`
