package mysql

const insertRecordSQL = `
INSERT INTO trip_requests
  (id, destination, range_start, range_end, travelers, intent, packages, generated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  packages     = VALUES(packages),
  generated_at = VALUES(generated_at)
`

// Newest first; aligns with the index on (generated_at, id).
const listRecentSQL = `
SELECT
  id,
  intent,
  packages,
  generated_at
FROM trip_requests
ORDER BY generated_at DESC, id DESC
LIMIT ?
`
