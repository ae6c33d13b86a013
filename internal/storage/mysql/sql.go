package mysql

const createUserSQL = `
INSERT INTO users (email, username, password_hash)
VALUES (?, ?, ?)
`

const getUserByEmailSQL = `
SELECT id, email, username, password_hash
FROM users
WHERE email = ?
`

// Atomic per-row upsert keyed (user_id, id): the save flow never rewrites the
// whole trip list, so concurrent saves of different trips cannot clobber
// each other.
const upsertTripSQL = `
INSERT INTO trips
  (user_id, id, title, destination, start_date, end_date, mood, image, data)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title       = VALUES(title),
  destination = VALUES(destination),
  start_date  = VALUES(start_date),
  end_date    = VALUES(end_date),
  mood        = VALUES(mood),
  image       = VALUES(image),
  data        = VALUES(data),
  updated_at  = CURRENT_TIMESTAMP
`

const getTripSQL = `
SELECT id, user_id, title, destination, start_date, end_date, mood, image, data, updated_at
FROM trips
WHERE user_id = ? AND id = ?
`

// utf8mb4 general collation makes the = comparison case-insensitive, which is
// exactly the overwrite-by-title fallback we want.
const findTripByTitleSQL = `
SELECT id, user_id, title, destination, start_date, end_date, mood, image, data, updated_at
FROM trips
WHERE user_id = ? AND title = ?
ORDER BY updated_at DESC
LIMIT 1
`

const listTripsSQL = `
SELECT id, title, destination, start_date, end_date, mood, image
FROM trips
WHERE user_id = ?
ORDER BY updated_at DESC, id DESC
`

const deleteTripSQL = `
DELETE FROM trips
WHERE user_id = ? AND id = ?
`
