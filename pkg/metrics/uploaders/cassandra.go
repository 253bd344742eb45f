package uploaders

import (
	"fmt"

	"github.com/gocql/gocql"
	"github.com/lahirumanulanka/bigdata-graph-project/pkg/metrics"
)

const summaryTableName = "phase_summaries"

// Config stores Cassandra database configuration
type Config struct {
	Username string
	Password string
	Host     []string
	Port     int
	KeySpace string
}

type cassandra struct {
	session  *gocql.Session
	keySpace string
}

// NewCassandra creates a new Cassandra Uploader. It ensures the
// keyspace and summary table exist before returning.
func NewCassandra(config Config) (metrics.Uploader, error) {
	cluster := gocql.NewCluster(config.Host...)
	cluster.ProtoVersion = 4
	if config.Port != 0 {
		cluster.Port = config.Port
	}
	if config.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: config.Username,
			Password: config.Password,
		}
	}
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("Creating gocql session failed: %s", err.Error())
	}

	uploader := &cassandra{session: session, keySpace: config.KeySpace}
	if err := uploader.createSchema(); err != nil {
		session.Close()
		return nil, err
	}
	return uploader, nil
}

func (c cassandra) createSchema() error {
	createKeySpace := fmt.Sprintf(
		"CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}",
		c.keySpace)
	if err := c.session.Query(createKeySpace).Exec(); err != nil {
		return fmt.Errorf("Creating keyspace failed: %s", err.Error())
	}

	createTable := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
		framework text,
		dataset text,
		phase text,
		elapsed_seconds double,
		max_rss_kb bigint,
		cpu_user_s double,
		cpu_sys_s double,
		avg_cpu_util double,
		avg_mem_used_mb double,
		avg_dsk_read_kbps double,
		avg_dsk_writ_kbps double,
		avg_net_recv_kbps double,
		avg_net_send_kbps double,
		PRIMARY KEY ((framework, dataset), phase))`,
		c.keySpace, summaryTableName)
	if err := c.session.Query(createTable).Exec(); err != nil {
		return fmt.Errorf("Creating summary table failed: %s", err.Error())
	}
	return nil
}

// SendRecords implements metrics.Uploader interface
func (c cassandra) SendRecords(records []metrics.Record) error {
	insert := fmt.Sprintf(`INSERT INTO %s.%s (
		framework, dataset, phase,
		elapsed_seconds, max_rss_kb, cpu_user_s, cpu_sys_s,
		avg_cpu_util, avg_mem_used_mb,
		avg_dsk_read_kbps, avg_dsk_writ_kbps,
		avg_net_recv_kbps, avg_net_send_kbps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.keySpace, summaryTableName)

	for _, record := range records {
		err := c.session.Query(insert,
			record.Framework,
			record.Dataset,
			record.Phase,
			record.Tool.ElapsedSeconds,
			record.Tool.MaxRSSKB,
			record.Tool.UserCPUSeconds,
			record.Tool.SysCPUSeconds,
			record.Averages.AvgCPUUtil,
			record.Averages.AvgMemUsedMB,
			record.Averages.AvgDskReadKBps,
			record.Averages.AvgDskWritKBps,
			record.Averages.AvgNetRecvKBps,
			record.Averages.AvgNetSendKBps,
		).Exec()
		if err != nil {
			return fmt.Errorf("Summary record saving failed: %s", err.Error())
		}
	}
	return nil
}
